package app

import (
	"context"

	"coutupro/config"
	"coutupro/internal/database"
	"coutupro/internal/handlers/middleware"
	"coutupro/internal/logger"
	"coutupro/internal/repositories"
	"coutupro/internal/services"
	"coutupro/internal/websockets"

	accessController "coutupro/internal/controllers/access"
	adminController "coutupro/internal/controllers/admin"
	alertController "coutupro/internal/controllers/alerts"
	alterationController "coutupro/internal/controllers/alterations"
	backupController "coutupro/internal/controllers/backup"
	clientController "coutupro/internal/controllers/clients"
	dashboardController "coutupro/internal/controllers/dashboard"
	measurementController "coutupro/internal/controllers/measurements"
	orderController "coutupro/internal/controllers/orders"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	Config     config.Config
	Session    *accessController.Session

	// Services
	TransactionService       *services.TransactionService
	CacheInvalidationService *services.CacheInvalidationService
	AlertScheduler           *services.AlertScheduler

	// Repositories
	UserRepo        repositories.UserRepository
	AccessCodeRepo  repositories.AccessCodeRepository
	FlagRepo        repositories.FlagRepository
	ClientRepo      repositories.ClientRepository
	MeasurementRepo repositories.MeasurementRepository
	OrderRepo       repositories.OrderRepository
	PaymentRepo     repositories.PaymentRepository
	AlterationRepo  repositories.AlterationRepository
	AlertRepo       repositories.AlertRepository

	// Controllers
	AccessController      *accessController.AccessController
	AdminController       *adminController.AdminController
	ClientController      *clientController.ClientController
	MeasurementController *measurementController.MeasurementController
	OrderController       *orderController.OrderController
	AlterationController  *alterationController.AlterationController
	AlertController       *alertController.AlertController
	DashboardController   *dashboardController.DashboardController
	BackupController      *backupController.BackupController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	return NewWithConfig(config)
}

// NewWithConfig opens the database, applies pending migrations and wires
// every component.
func NewWithConfig(config config.Config) (*App, error) {
	log := logger.New("app").Function("NewWithConfig")

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	applied, err := db.Migrate()
	if err != nil {
		_ = db.Close()
		return &App{}, log.Err("failed to migrate database", err)
	}
	if applied > 0 {
		log.Info("migrations applied", "count", applied)
	}

	// Initialize services
	transactionService := services.NewTransactionService(db)
	cacheInvalidationService := services.NewCacheInvalidationService(db, config.DashboardCacheTTL)

	// Initialize repositories
	userRepo := repositories.NewUser(db)
	accessCodeRepo := repositories.NewAccessCode(db)
	flagRepo := repositories.NewFlag(db)
	clientRepo := repositories.NewClient(db)
	measurementRepo := repositories.NewMeasurement(db)
	orderRepo := repositories.NewOrder(db)
	paymentRepo := repositories.NewPayment(db)
	alterationRepo := repositories.NewAlteration(db)
	alertRepo := repositories.NewAlert(db)

	websocket := websockets.New()

	// Initialize controllers with repositories and services
	access := accessController.New(accessCodeRepo, userRepo, transactionService)
	adminController := adminController.New(accessCodeRepo, config)
	clientController := clientController.New(
		clientRepo,
		orderRepo,
		measurementRepo,
		cacheInvalidationService,
	)
	measurementController := measurementController.New(measurementRepo)
	orderController := orderController.New(
		orderRepo,
		paymentRepo,
		measurementRepo,
		transactionService,
		cacheInvalidationService,
	)
	alterationController := alterationController.New(alterationRepo, orderRepo)
	alertController := alertController.New(alertRepo, cacheInvalidationService, websocket)
	dashboardController := dashboardController.New(
		clientRepo,
		orderRepo,
		alertRepo,
		cacheInvalidationService,
	)
	backupController := backupController.New(
		clientRepo,
		measurementRepo,
		orderRepo,
		paymentRepo,
		alterationRepo,
		alertRepo,
		transactionService,
		cacheInvalidationService,
	)

	session := accessController.NewSession(access, flagRepo, transactionService)
	if err := session.Init(context.Background()); err != nil {
		_ = db.Close()
		return &App{}, log.Err("failed to load session", err)
	}

	alertScheduler := services.NewAlertScheduler(
		orderRepo,
		alterationRepo,
		alertController,
		config.AlertSchedule,
		config.AlertHorizonDays,
	)

	app := &App{
		Database:                 db,
		Config:                   config,
		Middleware:               middleware.New(session, adminController),
		Websocket:                websocket,
		Session:                  session,
		TransactionService:       transactionService,
		CacheInvalidationService: cacheInvalidationService,
		AlertScheduler:           alertScheduler,
		UserRepo:                 userRepo,
		AccessCodeRepo:           accessCodeRepo,
		FlagRepo:                 flagRepo,
		ClientRepo:               clientRepo,
		MeasurementRepo:          measurementRepo,
		OrderRepo:                orderRepo,
		PaymentRepo:              paymentRepo,
		AlterationRepo:           alterationRepo,
		AlertRepo:                alertRepo,
		AccessController:         access,
		AdminController:          adminController,
		ClientController:         clientController,
		MeasurementController:    measurementController,
		OrderController:          orderController,
		AlterationController:     alterationController,
		AlertController:          alertController,
		DashboardController:      dashboardController,
		BackupController:         backupController,
	}

	if err := app.validate(); err != nil {
		_ = db.Close()
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.Session,
		a.TransactionService,
		a.CacheInvalidationService,
		a.AlertScheduler,
		a.AccessController,
		a.AdminController,
		a.ClientController,
		a.MeasurementController,
		a.OrderController,
		a.AlterationController,
		a.AlertController,
		a.DashboardController,
		a.BackupController,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.AlertScheduler != nil {
		a.AlertScheduler.Stop()
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
