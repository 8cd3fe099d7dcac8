package backupController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	. "coutupro/internal/models"
	"coutupro/internal/utils"
)

func decodeDocument(data []byte) (*BackupDocument, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var doc BackupDocument
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("%w: trailing data after document", ErrInvalidBackup)
	}

	normalize(&doc)
	if err := checkDocument(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func invalidRecord(table string, index int, format string, args ...any) error {
	return fmt.Errorf("%w: %s[%d]: %s", ErrInvalidBackup, table, index, fmt.Sprintf(format, args...))
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// checkDocument rejects the whole document on the first record that the
// regular create paths would refuse.
func checkDocument(doc *BackupDocument) error {
	for i, client := range doc.Clients {
		switch {
		case blank(client.ID):
			return invalidRecord("clients", i, "missing id")
		case blank(client.LastName), blank(client.FirstNames), blank(client.Phone):
			return invalidRecord("clients", i, "lastName, firstNames and phone are required")
		case client.CreatedAt.IsZero():
			return invalidRecord("clients", i, "missing createdAt")
		}
	}

	for i, measurement := range doc.Measurements {
		switch {
		case blank(measurement.ID):
			return invalidRecord("mesures", i, "missing id")
		case blank(measurement.ClientID):
			return invalidRecord("mesures", i, "missing clientId")
		case measurement.Date.IsZero():
			return invalidRecord("mesures", i, "missing date")
		}
		if err := utils.ValidateStruct(measurement.BodyMeasurements); err != nil {
			return invalidRecord("mesures", i, "%v", err)
		}
	}

	for i, order := range doc.Orders {
		switch {
		case blank(order.ID):
			return invalidRecord("commandes", i, "missing id")
		case blank(order.ClientID), blank(order.MeasurementID):
			return invalidRecord("commandes", i, "clientId and measurementId are required")
		case blank(order.Model):
			return invalidRecord("commandes", i, "missing model")
		case !order.Status.Valid():
			return invalidRecord("commandes", i, "unknown status %q", order.Status)
		case order.OrderDate.IsZero(), order.ExpectedDelivery.IsZero():
			return invalidRecord("commandes", i, "orderDate and expectedDelivery are required")
		case !order.TotalAmount.IsPositive():
			return invalidRecord("commandes", i, "totalAmount must be positive")
		case order.Deposit.IsNegative():
			return invalidRecord("commandes", i, "deposit must not be negative")
		}
	}

	for i, payment := range doc.Payments {
		switch {
		case blank(payment.OrderID):
			return invalidRecord("paiements", i, "missing orderId")
		case !payment.Type.Valid():
			return invalidRecord("paiements", i, "unknown type %q", payment.Type)
		case !payment.Amount.IsPositive():
			return invalidRecord("paiements", i, "amount must be positive")
		case payment.Date.IsZero():
			return invalidRecord("paiements", i, "missing date")
		}
	}

	for i, alteration := range doc.Alterations {
		switch {
		case blank(alteration.OrderID):
			return invalidRecord("retouches", i, "missing orderId")
		case blank(alteration.Description):
			return invalidRecord("retouches", i, "missing description")
		case !alteration.Status.Valid():
			return invalidRecord("retouches", i, "unknown status %q", alteration.Status)
		case alteration.ExpectedDate.IsZero():
			return invalidRecord("retouches", i, "missing expectedDate")
		}
	}

	for i, alert := range doc.Alerts {
		switch {
		case !alert.Type.Valid():
			return invalidRecord("alertes", i, "unknown type %q", alert.Type)
		case blank(alert.Message):
			return invalidRecord("alertes", i, "missing message")
		}
	}

	return nil
}

// balancedOrderIDs lists every order whose balance depends on the document,
// in first-seen order.
func balancedOrderIDs(doc *BackupDocument) []string {
	seen := make(map[string]bool, len(doc.Orders))
	var ids []string
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, order := range doc.Orders {
		add(order.ID)
	}
	for _, payment := range doc.Payments {
		add(payment.OrderID)
	}
	return ids
}
