package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/liftsforlife/backend/auth"
	"github.com/liftsforlife/backend/config"
	"github.com/liftsforlife/backend/controllers"
	"github.com/liftsforlife/backend/database"
	"github.com/liftsforlife/backend/dto"
	"github.com/liftsforlife/backend/mailchimp"
	"github.com/liftsforlife/backend/mailer"
	"github.com/liftsforlife/backend/middleware"
	"github.com/liftsforlife/backend/models"
	"github.com/liftsforlife/backend/store"
	"github.com/liftsforlife/backend/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.MongoURI, cfg.DatabaseName)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatal(err)
	}

	if err := utils.SeedAdmin(ctx, db.Collection("admins"), cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		log.Fatal(err)
	}

	if err := dto.RegisterValidations(); err != nil {
		log.Fatal(err)
	}

	// Two instances of the same credential machinery: admins start
	// unconfirmed, clients are trusted on creation.
	adminCreds := store.NewCredentials(db.Collection("admins"), false)
	clientCreds := store.NewCredentials(db.Collection("clients"), true)

	adminIssuer := auth.NewTokenIssuer(auth.KindAdmin, cfg.JWTAdminSecret, cfg.TokenTTL)
	clientIssuer := auth.NewTokenIssuer(auth.KindClient, cfg.JWTClientSecret, cfg.TokenTTL)

	mail := mailer.New(cfg.SMTP)
	chimp := mailchimp.New(cfg.Mailchimp)

	adminAuth := &controllers.PrincipalAuth{
		Creds:  adminCreds,
		Issuer: adminIssuer,
		Mail:   mail,
		ConfirmURL: func(token string) string {
			return cfg.APIBaseURL + "/api/admins/confirmation/" + token
		},
		ResetURL: func(token string) string {
			return cfg.ClientBaseURL + "/admin/changepassword?token=" + token
		},
		DisplayName: adminName(adminCreds),
	}
	clientAuth := &controllers.PrincipalAuth{
		Creds:  clientCreds,
		Issuer: clientIssuer,
		Mail:   mail,
		ConfirmURL: func(token string) string {
			return cfg.APIBaseURL + "/api/clients/confirmation/" + token
		},
		ResetURL: func(token string) string {
			return cfg.ClientBaseURL + "/client/changepassword?token=" + token
		},
		DisplayName: clientName(clientCreds),
	}

	admins := &controllers.Admins{Creds: adminCreds, Issuer: adminIssuer, Mail: mail, ConfirmURL: adminAuth.ConfirmURL}
	clients := &controllers.Clients{Creds: clientCreds, Issuer: clientIssuer, Mail: mail, ConfirmURL: clientAuth.ConfirmURL}
	equipments := &controllers.Equipments{Col: db.Collection("equipments")}
	orders := &controllers.Orders{
		Col:        db.Collection("orders"),
		ClientsCol: db.Collection("clients"),
		EquipsCol:  db.Collection("equipments"),
		Mail:       mail,
	}
	donations := &controllers.Donations{Col: db.Collection("donations")}
	messages := &controllers.Messages{Col: db.Collection("messages")}
	newsletters := &controllers.Newsletters{
		Col:        db.Collection("newsletters"),
		ClientsCol: db.Collection("clients"),
		Mailchimp:  chimp,
	}

	adminGuard := middleware.Guard(adminIssuer)
	clientGuard := middleware.Guard(clientIssuer)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())

	allowedOrigins := map[string]bool{}
	for _, origin := range cfg.AllowedOrigins {
		allowedOrigins[origin] = true
	}
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "x-auth-token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.POST("/api/auth/admin", adminAuth.Login())
	r.POST("/api/auth/client", clientAuth.Login())
	r.GET("/api/admins/confirmation/:token", adminAuth.Confirm())
	r.GET("/api/clients/confirmation/:token", clientAuth.Confirm())
	r.POST("/api/admins/forgetpswd", adminAuth.ForgotPassword())
	r.POST("/api/clients/forgetpswd", clientAuth.ForgotPassword())
	r.POST("/api/messages", messages.Create())
	r.POST("/api/donations", donations.Create())
	r.POST("/api/newsletters", newsletters.Subscribe())
	r.DELETE("/api/newsletters", newsletters.Unsubscribe())

	// Admin-guarded
	adm := r.Group("/api", adminGuard)
	{
		adm.GET("/auth/admin", admins.Me())

		adm.GET("/admins", admins.List())
		adm.POST("/admins", admins.Create())
		adm.PUT("/admins", admins.UpdateMe())
		adm.GET("/admins/:id", admins.Get())
		adm.DELETE("/admins/me", admins.DeleteMe())
		adm.DELETE("/admins/:id", admins.Delete())
		adm.PUT("/admins/password", adminAuth.SetPassword())
		adm.POST("/admins/changeemail", adminAuth.ChangeEmail())
		adm.PUT("/admins/resendconfirmation", adminAuth.ResendConfirmation())

		adm.GET("/clients", clients.List())
		adm.POST("/clients", clients.Create())
		adm.GET("/clients/:id", clients.Get())
		adm.PUT("/clients/:id", clients.Update())
		adm.DELETE("/clients/:id", clients.Delete())

		adm.GET("/equipments", equipments.List())
		adm.POST("/equipments", equipments.Create())
		adm.GET("/equipments/:id", equipments.Get())
		adm.GET("/equipments/slug/:slug", equipments.GetBySlug())
		adm.PATCH("/equipments/:id", equipments.Update())
		adm.DELETE("/equipments/:id", equipments.Delete())

		adm.GET("/orders", orders.List())
		adm.POST("/orders", orders.Create())
		adm.GET("/orders/:id", orders.Get())
		adm.PUT("/orders/:id", orders.Update())
		adm.DELETE("/orders/:id", orders.Delete())

		adm.GET("/donations", donations.List())
		adm.GET("/donations/:id", donations.Get())
		adm.DELETE("/donations/:id", donations.Delete())

		adm.GET("/messages", messages.List())
		adm.DELETE("/messages/:id", messages.Delete())

		adm.GET("/newsletters", newsletters.List())
	}

	// Client-guarded
	cli := r.Group("/api", clientGuard)
	{
		cli.GET("/auth/client", clients.Me())
		cli.PUT("/clients", clients.UpdateMe())
		cli.POST("/clients/password", clientAuth.SetPassword())
		cli.POST("/clients/changeemail", clientAuth.ChangeEmail())
		cli.POST("/clients/resendconfirmation", clientAuth.ResendConfirmation())
	}

	log.Println("Server started on port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

// adminName resolves an admin's display name for email salutations.
func adminName(creds *store.Credentials) func(ctx context.Context, id bson.ObjectID) string {
	return func(ctx context.Context, id bson.ObjectID) string {
		var admin models.Admin
		if err := creds.Collection().FindOne(ctx, bson.M{"_id": id}).Decode(&admin); err != nil || admin.Name == "" {
			return "Administrator"
		}
		return admin.Name
	}
}

func clientName(creds *store.Credentials) func(ctx context.Context, id bson.ObjectID) string {
	return func(ctx context.Context, id bson.ObjectID) string {
		var client models.Client
		if err := creds.Collection().FindOne(ctx, bson.M{"_id": id}).Decode(&client); err != nil || client.FirstName == "" {
			return "customer"
		}
		return client.FirstName
	}
}
