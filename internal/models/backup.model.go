package models

// BackupDocument is the portable export of every business table. Users
// and access codes are not part of it.
type BackupDocument struct {
	Clients      []Client      `json:"clients"`
	Measurements []Measurement `json:"mesures"`
	Orders       []Order       `json:"commandes"`
	Payments     []Payment     `json:"paiements"`
	Alterations  []Alteration  `json:"retouches"`
	Alerts       []Alert       `json:"alertes"`
}
