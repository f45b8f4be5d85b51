package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auditapp "github.com/amani/backend/internal/application/audit"
	documentapp "github.com/amani/backend/internal/application/document"
	financeapp "github.com/amani/backend/internal/application/finance"
	identityapp "github.com/amani/backend/internal/application/identity"
	programapp "github.com/amani/backend/internal/application/program"
	reportapp "github.com/amani/backend/internal/application/report"
	"github.com/amani/backend/internal/domain/document"
	"github.com/amani/backend/internal/domain/shared"
	"github.com/amani/backend/internal/infrastructure/auth"
	"github.com/amani/backend/internal/infrastructure/config"
	"github.com/amani/backend/internal/infrastructure/logger"
	"github.com/amani/backend/internal/infrastructure/persistence"
	"github.com/amani/backend/internal/infrastructure/printing"
	"github.com/amani/backend/internal/infrastructure/storage"
	"github.com/amani/backend/internal/interfaces/http/handler"
	"github.com/amani/backend/internal/interfaces/http/middleware"
	"github.com/amani/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Amani Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with zap-backed GORM logging
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Token blacklist: Redis when reachable, in-memory otherwise.
	// The in-memory fallback is for development; revocations do not
	// survive restarts or span replicas.
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		if cfg.App.IsProduction() {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected")
	}

	// Object storage for receipts, documents, and report artifacts
	objectStorage, err := storage.NewObjectStorage(&cfg.Storage)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	log.Info("Object storage initialized", zap.String("provider", cfg.Storage.Provider))

	// Report rendering pipeline
	templateEngine, err := printing.NewTemplateEngine()
	if err != nil {
		log.Fatal("Failed to load report templates", zap.Error(err))
	}
	pdfRenderer := printing.NewChromedpRenderer(cfg.Printing, log)
	reportPrinter := printing.NewReportPrinter(templateEngine, pdfRenderer, printing.NewExcelExporter())
	defer func() {
		if err := reportPrinter.Close(); err != nil {
			log.Error("Error closing report printer", zap.Error(err))
		}
	}()

	// JWT
	jwtService := auth.NewJWTService(cfg.JWT)

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	donorRepo := persistence.NewGormDonorRepository(db.DB)
	fundingRepo := persistence.NewGormDonorFundingRepository(db.DB)
	budgetRepo := persistence.NewGormBudgetRepository(db.DB)
	budgetItemRepo := persistence.NewGormBudgetItemRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	approvalRepo := persistence.NewGormExpenseApprovalRepository(db.DB)
	bankAccountRepo := persistence.NewGormBankAccountRepository(db.DB)
	cashFlowRepo := persistence.NewGormCashFlowRepository(db.DB)
	poRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	commentRepo := persistence.NewGormCommentRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)
	activityRepo := persistence.NewGormActivityLogRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Entity reference resolver for documents and comments. Repos
	// without an Exists method are adapted through FindByID.
	resolver := document.NewRefResolver()
	resolver.Register(document.EntityKindProject, projectRepo.Exists)
	resolver.Register(document.EntityKindDonor, donorRepo.Exists)
	resolver.Register(document.EntityKindExpense, existsByFind(func(ctx context.Context, id uuid.UUID) error {
		_, err := expenseRepo.FindByID(ctx, id)
		return err
	}))
	resolver.Register(document.EntityKindBudget, existsByFind(func(ctx context.Context, id uuid.UUID) error {
		_, err := budgetRepo.FindByID(ctx, id)
		return err
	}))
	resolver.Register(document.EntityKindPurchaseOrder, existsByFind(func(ctx context.Context, id uuid.UUID) error {
		_, err := poRepo.FindByID(ctx, id)
		return err
	}))

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, activityRepo, log)
	userService := identityapp.NewUserService(userRepo, jwtService, blacklist, activityRepo, log)
	projectService := programapp.NewProjectService(projectRepo, userRepo, activityRepo, log)
	donorService := programapp.NewDonorService(donorRepo, fundingRepo, projectRepo, activityRepo, log)
	budgetService := financeapp.NewBudgetService(budgetRepo, budgetItemRepo, projectRepo, txScope, activityRepo, log)
	expenseService := financeapp.NewExpenseService(expenseRepo, approvalRepo, projectRepo, txScope, activityRepo, log)
	bankAccountService := financeapp.NewBankAccountService(bankAccountRepo, activityRepo, log)
	cashFlowService := financeapp.NewCashFlowService(cashFlowRepo, bankAccountRepo, txScope, activityRepo, log)
	poService := financeapp.NewPurchaseOrderService(poRepo, projectRepo, activityRepo, log)
	documentService := documentapp.NewDocumentService(documentRepo, objectStorage, resolver, activityRepo, log)
	commentService := documentapp.NewCommentService(commentRepo, documentService, resolver, activityRepo, log)
	aggregationService := reportapp.NewAggregationService(
		projectRepo, budgetRepo, budgetItemRepo, expenseRepo, bankAccountRepo, cashFlowRepo, fundingRepo)
	reportService := reportapp.NewReportService(reportRepo, aggregationService, reportPrinter, objectStorage, activityRepo, log)
	activityService := auditapp.NewActivityService(activityRepo, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	projectHandler := handler.NewProjectHandler(projectService)
	donorHandler := handler.NewDonorHandler(donorService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	expenseHandler := handler.NewExpenseHandler(expenseService, documentService)
	bankAccountHandler := handler.NewBankAccountHandler(bankAccountService)
	cashFlowHandler := handler.NewCashFlowHandler(cashFlowService)
	poHandler := handler.NewPurchaseOrderHandler(poService)
	documentHandler := handler.NewDocumentHandler(documentService)
	commentHandler := handler.NewCommentHandler(commentService)
	reportHandler := handler.NewReportHandler(reportService)
	activityHandler := handler.NewActivityLogHandler(activityService)
	systemHandler := handler.NewSystemHandler(db.DB, version)

	// Gin engine
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.RegisterValidations(); err != nil {
		log.Fatal("Failed to register validations", zap.Error(err))
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(middleware.RequestID(log))
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Probes stay outside the versioned, authenticated API
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	r.Use(middleware.JWTAuthMiddleware(jwtConfig))

	perm := middleware.RequirePermission

	// Auth
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.Me)
	authRoutes.POST("/change-password", authHandler.ChangePassword)

	// User administration
	userRoutes := router.NewDomainGroup("users", "/users")
	userRoutes.POST("", perm(middleware.ResourceUsers, middleware.ActionManage), userHandler.Create)
	userRoutes.GET("", perm(middleware.ResourceUsers, middleware.ActionRead), userHandler.List)
	userRoutes.GET("/:id", perm(middleware.ResourceUsers, middleware.ActionRead), userHandler.Get)
	userRoutes.PUT("/:id", perm(middleware.ResourceUsers, middleware.ActionManage), userHandler.UpdateProfile)
	userRoutes.PUT("/:id/role", perm(middleware.ResourceUsers, middleware.ActionManage), userHandler.ChangeRole)
	userRoutes.POST("/:id/reset-password", perm(middleware.ResourceUsers, middleware.ActionManage), userHandler.ResetPassword)
	userRoutes.POST("/:id/deactivate", perm(middleware.ResourceUsers, middleware.ActionManage), userHandler.Deactivate)
	userRoutes.POST("/:id/activate", perm(middleware.ResourceUsers, middleware.ActionManage), userHandler.Activate)

	// Projects
	projectRoutes := router.NewDomainGroup("projects", "/projects")
	projectRoutes.POST("", perm(middleware.ResourceProjects, middleware.ActionCreate), projectHandler.Create)
	projectRoutes.GET("", perm(middleware.ResourceProjects, middleware.ActionRead), projectHandler.List)
	projectRoutes.GET("/:id", perm(middleware.ResourceProjects, middleware.ActionRead), projectHandler.Get)
	projectRoutes.PUT("/:id", perm(middleware.ResourceProjects, middleware.ActionUpdate), projectHandler.Update)
	projectRoutes.DELETE("/:id", perm(middleware.ResourceProjects, middleware.ActionDelete), projectHandler.Delete)
	projectRoutes.PUT("/:id/manager", perm(middleware.ResourceProjects, middleware.ActionManage), projectHandler.AssignManager)
	projectRoutes.POST("/:id/activate", perm(middleware.ResourceProjects, middleware.ActionUpdate), projectHandler.Activate)
	projectRoutes.POST("/:id/hold", perm(middleware.ResourceProjects, middleware.ActionUpdate), projectHandler.Hold)
	projectRoutes.POST("/:id/complete", perm(middleware.ResourceProjects, middleware.ActionUpdate), projectHandler.Complete)
	projectRoutes.POST("/:id/cancel", perm(middleware.ResourceProjects, middleware.ActionUpdate), projectHandler.Cancel)
	projectRoutes.GET("/:id/fundings", perm(middleware.ResourceDonors, middleware.ActionRead), donorHandler.ListProjectFundings)
	projectRoutes.GET("/:id/fundings/total", perm(middleware.ResourceDonors, middleware.ActionRead), donorHandler.ProjectFundingTotal)

	// Donors and their fundings
	donorRoutes := router.NewDomainGroup("donors", "/donors")
	donorRoutes.POST("", perm(middleware.ResourceDonors, middleware.ActionCreate), donorHandler.Create)
	donorRoutes.GET("", perm(middleware.ResourceDonors, middleware.ActionRead), donorHandler.List)
	donorRoutes.GET("/:id", perm(middleware.ResourceDonors, middleware.ActionRead), donorHandler.Get)
	donorRoutes.PUT("/:id", perm(middleware.ResourceDonors, middleware.ActionUpdate), donorHandler.Update)
	donorRoutes.POST("/:id/deactivate", perm(middleware.ResourceDonors, middleware.ActionUpdate), donorHandler.Deactivate)
	donorRoutes.POST("/:id/activate", perm(middleware.ResourceDonors, middleware.ActionUpdate), donorHandler.Activate)
	donorRoutes.POST("/:id/fundings", perm(middleware.ResourceDonors, middleware.ActionCreate), donorHandler.RecordFunding)
	donorRoutes.GET("/:id/fundings", perm(middleware.ResourceDonors, middleware.ActionRead), donorHandler.ListFundings)
	donorRoutes.DELETE("/:id/fundings/:fundingId", perm(middleware.ResourceDonors, middleware.ActionDelete), donorHandler.DeleteFunding)

	// Budgets
	budgetRoutes := router.NewDomainGroup("budgets", "/budgets")
	budgetRoutes.POST("", perm(middleware.ResourceBudgets, middleware.ActionCreate), budgetHandler.Create)
	budgetRoutes.GET("", perm(middleware.ResourceBudgets, middleware.ActionRead), budgetHandler.List)
	budgetRoutes.GET("/:id", perm(middleware.ResourceBudgets, middleware.ActionRead), budgetHandler.Get)
	budgetRoutes.DELETE("/:id", perm(middleware.ResourceBudgets, middleware.ActionDelete), budgetHandler.Delete)
	budgetRoutes.POST("/:id/activate", perm(middleware.ResourceBudgets, middleware.ActionUpdate), budgetHandler.Activate)
	budgetRoutes.POST("/:id/close", perm(middleware.ResourceBudgets, middleware.ActionUpdate), budgetHandler.Close)
	budgetRoutes.POST("/:id/items", perm(middleware.ResourceBudgets, middleware.ActionUpdate), budgetHandler.AddItem)
	budgetRoutes.POST("/reallocate", perm(middleware.ResourceBudgets, middleware.ActionUpdate), budgetHandler.Reallocate)

	// Expense workflow
	expenseRoutes := router.NewDomainGroup("expenses", "/expenses")
	expenseRoutes.POST("", perm(middleware.ResourceExpenses, middleware.ActionCreate), expenseHandler.Create)
	expenseRoutes.GET("", perm(middleware.ResourceExpenses, middleware.ActionRead), expenseHandler.List)
	expenseRoutes.GET("/:id", perm(middleware.ResourceExpenses, middleware.ActionRead), expenseHandler.Get)
	expenseRoutes.PUT("/:id", perm(middleware.ResourceExpenses, middleware.ActionUpdate), expenseHandler.Update)
	expenseRoutes.DELETE("/:id", perm(middleware.ResourceExpenses, middleware.ActionDelete), expenseHandler.Delete)
	expenseRoutes.POST("/:id/submit", perm(middleware.ResourceExpenses, middleware.ActionUpdate), expenseHandler.Submit)
	expenseRoutes.POST("/:id/review", perm(middleware.ResourceExpenses, middleware.ActionReview), expenseHandler.StartReview)
	expenseRoutes.POST("/:id/approve", perm(middleware.ResourceExpenses, middleware.ActionApprove), expenseHandler.Approve)
	expenseRoutes.POST("/:id/reject", perm(middleware.ResourceExpenses, middleware.ActionReview), expenseHandler.Reject)
	expenseRoutes.POST("/:id/resubmit", perm(middleware.ResourceExpenses, middleware.ActionUpdate), expenseHandler.Resubmit)
	expenseRoutes.POST("/:id/pay", perm(middleware.ResourceExpenses, middleware.ActionPay), expenseHandler.Pay)
	expenseRoutes.POST("/:id/receipt", perm(middleware.ResourceExpenses, middleware.ActionUpdate), expenseHandler.UploadReceipt)

	// Bank accounts and cash flows
	bankRoutes := router.NewDomainGroup("bank-accounts", "/bank-accounts")
	bankRoutes.POST("", perm(middleware.ResourceBankAccounts, middleware.ActionCreate), bankAccountHandler.Create)
	bankRoutes.GET("", perm(middleware.ResourceBankAccounts, middleware.ActionRead), bankAccountHandler.List)
	bankRoutes.GET("/:id", perm(middleware.ResourceBankAccounts, middleware.ActionRead), bankAccountHandler.Get)
	bankRoutes.POST("/:id/deactivate", perm(middleware.ResourceBankAccounts, middleware.ActionUpdate), bankAccountHandler.Deactivate)
	bankRoutes.POST("/:id/activate", perm(middleware.ResourceBankAccounts, middleware.ActionUpdate), bankAccountHandler.Activate)
	bankRoutes.GET("/:id/projection", perm(middleware.ResourceCashFlows, middleware.ActionRead), cashFlowHandler.Projection)

	cashFlowRoutes := router.NewDomainGroup("cash-flows", "/cash-flows")
	cashFlowRoutes.POST("", perm(middleware.ResourceCashFlows, middleware.ActionCreate), cashFlowHandler.Record)
	cashFlowRoutes.GET("", perm(middleware.ResourceCashFlows, middleware.ActionRead), cashFlowHandler.List)
	cashFlowRoutes.GET("/:id", perm(middleware.ResourceCashFlows, middleware.ActionRead), cashFlowHandler.Get)
	cashFlowRoutes.POST("/:id/reconcile", perm(middleware.ResourceCashFlows, middleware.ActionUpdate), cashFlowHandler.Reconcile)
	cashFlowRoutes.POST("/:id/unreconcile", perm(middleware.ResourceCashFlows, middleware.ActionUpdate), cashFlowHandler.Unreconcile)

	// Purchase orders
	poRoutes := router.NewDomainGroup("purchase-orders", "/purchase-orders")
	poRoutes.POST("", perm(middleware.ResourcePurchaseOrders, middleware.ActionCreate), poHandler.Create)
	poRoutes.GET("", perm(middleware.ResourcePurchaseOrders, middleware.ActionRead), poHandler.List)
	poRoutes.GET("/:id", perm(middleware.ResourcePurchaseOrders, middleware.ActionRead), poHandler.Get)
	poRoutes.POST("/:id/submit", perm(middleware.ResourcePurchaseOrders, middleware.ActionUpdate), poHandler.Submit)
	poRoutes.POST("/:id/approve", perm(middleware.ResourcePurchaseOrders, middleware.ActionApprove), poHandler.Approve)
	poRoutes.POST("/:id/reject", perm(middleware.ResourcePurchaseOrders, middleware.ActionApprove), poHandler.Reject)
	poRoutes.POST("/:id/order", perm(middleware.ResourcePurchaseOrders, middleware.ActionUpdate), poHandler.MarkOrdered)
	poRoutes.POST("/:id/receive", perm(middleware.ResourcePurchaseOrders, middleware.ActionUpdate), poHandler.MarkReceived)
	poRoutes.POST("/:id/cancel", perm(middleware.ResourcePurchaseOrders, middleware.ActionUpdate), poHandler.Cancel)

	// Documents
	documentRoutes := router.NewDomainGroup("documents", "/documents")
	documentRoutes.POST("", perm(middleware.ResourceDocuments, middleware.ActionCreate), documentHandler.Upload)
	documentRoutes.GET("", perm(middleware.ResourceDocuments, middleware.ActionRead), documentHandler.List)
	documentRoutes.GET("/:id", perm(middleware.ResourceDocuments, middleware.ActionRead), documentHandler.Get)
	documentRoutes.GET("/:id/download", perm(middleware.ResourceDocuments, middleware.ActionRead), documentHandler.Download)
	documentRoutes.GET("/:id/download-url", perm(middleware.ResourceDocuments, middleware.ActionRead), documentHandler.DownloadURL)
	documentRoutes.PUT("/:id", perm(middleware.ResourceDocuments, middleware.ActionUpdate), documentHandler.Rename)
	documentRoutes.DELETE("/:id", perm(middleware.ResourceDocuments, middleware.ActionDelete), documentHandler.Delete)

	// Comments
	commentRoutes := router.NewDomainGroup("comments", "/comments")
	commentRoutes.POST("", perm(middleware.ResourceComments, middleware.ActionCreate), commentHandler.Create)
	commentRoutes.GET("", perm(middleware.ResourceComments, middleware.ActionRead), commentHandler.ListThreads)
	commentRoutes.GET("/:id", perm(middleware.ResourceComments, middleware.ActionRead), commentHandler.Get)
	commentRoutes.POST("/:id/replies", perm(middleware.ResourceComments, middleware.ActionCreate), commentHandler.Reply)
	commentRoutes.PUT("/:id", perm(middleware.ResourceComments, middleware.ActionUpdate), commentHandler.Edit)
	commentRoutes.DELETE("/:id", perm(middleware.ResourceComments, middleware.ActionDelete), commentHandler.Delete)

	// Reports
	reportRoutes := router.NewDomainGroup("reports", "/reports")
	reportRoutes.POST("", perm(middleware.ResourceReports, middleware.ActionCreate), reportHandler.Generate)
	reportRoutes.GET("", perm(middleware.ResourceReports, middleware.ActionRead), reportHandler.List)
	reportRoutes.GET("/:id", perm(middleware.ResourceReports, middleware.ActionRead), reportHandler.Get)
	reportRoutes.GET("/:id/download", perm(middleware.ResourceReports, middleware.ActionRead), reportHandler.Download)
	reportRoutes.DELETE("/:id", perm(middleware.ResourceReports, middleware.ActionDelete), reportHandler.Delete)

	// Audit trail
	activityRoutes := router.NewDomainGroup("activity-logs", "/activity-logs")
	activityRoutes.GET("", perm(middleware.ResourceActivityLogs, middleware.ActionRead), activityHandler.List)
	activityRoutes.GET("/:kind/:id", perm(middleware.ResourceActivityLogs, middleware.ActionRead), activityHandler.EntityHistory)

	r.Register(authRoutes)
	r.Register(userRoutes)
	r.Register(projectRoutes)
	r.Register(donorRoutes)
	r.Register(budgetRoutes)
	r.Register(expenseRoutes)
	r.Register(bankRoutes)
	r.Register(cashFlowRoutes)
	r.Register(poRoutes)
	r.Register(documentRoutes)
	r.Register(commentRoutes)
	r.Register(reportRoutes)
	r.Register(activityRoutes)
	r.Setup()

	engine.GET("/api/v1/health", systemHandler.Health)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// existsByFind adapts a FindByID-style lookup into an existence check
func existsByFind(find func(ctx context.Context, id uuid.UUID) error) document.ExistenceChecker {
	return func(ctx context.Context, id uuid.UUID) (bool, error) {
		err := find(ctx, id)
		if err == nil {
			return true, nil
		}
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
}
