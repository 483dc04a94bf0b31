package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/optimacrm/crm-backend-go/internal/config"
	appHTTP "github.com/optimacrm/crm-backend-go/internal/handler/http"
	"github.com/optimacrm/crm-backend-go/internal/pkg/database"
	"github.com/optimacrm/crm-backend-go/internal/pkg/email"
	"github.com/optimacrm/crm-backend-go/internal/pkg/jwt"
	"github.com/optimacrm/crm-backend-go/internal/pkg/oauth"
	"github.com/optimacrm/crm-backend-go/internal/repository/postgresql"
	accountService "github.com/optimacrm/crm-backend-go/internal/service/account"
	approvalService "github.com/optimacrm/crm-backend-go/internal/service/approval"
	serviceAuth "github.com/optimacrm/crm-backend-go/internal/service/auth"
	contactService "github.com/optimacrm/crm-backend-go/internal/service/contact"
	dashboardService "github.com/optimacrm/crm-backend-go/internal/service/dashboard"
	dealService "github.com/optimacrm/crm-backend-go/internal/service/deal"
	leadService "github.com/optimacrm/crm-backend-go/internal/service/lead"
	projectService "github.com/optimacrm/crm-backend-go/internal/service/project"
	taskService "github.com/optimacrm/crm-backend-go/internal/service/task"
	ticketService "github.com/optimacrm/crm-backend-go/internal/service/ticket"
	userService "github.com/optimacrm/crm-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	approvalRepo := postgresql.NewApprovalRepository(db)
	leadRepo := postgresql.NewLeadRepository(db)
	contactRepo := postgresql.NewContactRepository(db)
	accountRepo := postgresql.NewAccountRepository(db)
	dealRepo := postgresql.NewDealRepository(db)
	projectRepo := postgresql.NewProjectRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	ticketRepo := postgresql.NewTicketRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	authSvc := serviceAuth.NewAuthService(db, userRepo, approvalRepo, refreshTokenRepo, JWTService)
	approvalSvc := approvalService.NewApprovalService(db, approvalRepo, userRepo, emailService, cfg.App.FrontendURL)
	userSvc := userService.NewUserService(db, userRepo)
	leadSvc := leadService.NewLeadService(db, leadRepo, contactRepo)
	contactSvc := contactService.NewContactService(db, contactRepo)
	accountSvc := accountService.NewAccountService(db, accountRepo)
	dealSvc := dealService.NewDealService(db, dealRepo)
	projectSvc := projectService.NewProjectService(db, projectRepo)
	taskSvc := taskService.NewTaskService(db, taskRepo)
	ticketSvc := ticketService.NewTicketService(db, ticketRepo)
	dashboardSvc := dashboardService.NewDashboardService(db, dashboardRepo)

	handlers := appHTTP.Handlers{
		Auth:      appHTTP.NewAuthHandler(JWTService, authSvc, GoogleService, cfg.App.FrontendURL),
		User:      appHTTP.NewUserHandler(userSvc),
		Approval:  appHTTP.NewApprovalHandler(approvalSvc),
		Dashboard: appHTTP.NewDashboardHandler(dashboardSvc),
		Lead:      appHTTP.NewLeadHandler(leadSvc),
		Contact:   appHTTP.NewContactHandler(contactSvc),
		Account:   appHTTP.NewAccountHandler(accountSvc),
		Deal:      appHTTP.NewDealHandler(dealSvc),
		Project:   appHTTP.NewProjectHandler(projectSvc),
		Task:      appHTTP.NewTaskHandler(taskSvc),
		Ticket:    appHTTP.NewTicketHandler(ticketSvc),
	}

	router := appHTTP.NewRouter(cfg, JWTService, userRepo, handlers)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
