package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/liftsforlife/backend/auth"
	"github.com/liftsforlife/backend/dto"
	"github.com/liftsforlife/backend/mailer"
	"github.com/liftsforlife/backend/middleware"
	"github.com/liftsforlife/backend/store"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// PrincipalAuth bundles the credential flows shared by both principal
// kinds. Admins and clients get their own instance wired to their own
// collection, signing secret and link URLs; the route logic is written
// once.
type PrincipalAuth struct {
	Creds  *store.Credentials
	Issuer *auth.TokenIssuer
	Mail   mailer.Sender

	ConfirmURL func(token string) string
	ResetURL   func(token string) string

	// DisplayName resolves a salutation for email bodies.
	DisplayName func(ctx context.Context, id bson.ObjectID) string
}

// Login authenticates by email and password and returns a session token.
// Unknown email and wrong password are indistinguishable to the caller.
func (p *PrincipalAuth) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.LoginDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		principal, err := p.Creds.VerifyPassword(c.Request.Context(), body.Email, body.Password)
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		if err != nil {
			log.Printf("login lookup failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		if !principal.EmailConfirmed {
			c.JSON(http.StatusBadRequest, gin.H{"error": "please confirm your email to login"})
			return
		}

		token, err := p.Issuer.Issue(principal.ID)
		if err != nil {
			log.Printf("token issue failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "id": principal.ID})
	}
}

// Confirm consumes an emailed confirmation token and marks the mailbox
// verified. Tokens are stateless, so hitting this twice is a no-op.
func (p *PrincipalAuth) Confirm() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := p.Issuer.Verify(c.Param("token"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token is not valid"})
			return
		}

		err = p.Creds.MarkEmailConfirmed(c.Request.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		if err != nil {
			log.Printf("mark email confirmed failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Email confirmed. Please login"})
	}
}

// ForgotPassword mints a reset token and mails a link. Issuing the token
// has no visible side effect; nothing changes until the follow-up request
// submits it together with a new password.
func (p *PrincipalAuth) ForgotPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ForgotPasswordDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		principal, err := p.Creds.FindByEmail(c.Request.Context(), body.Email)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no account with given email"})
			return
		}
		if err != nil {
			log.Printf("forgot password lookup failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		token, err := p.Issuer.Issue(principal.ID)
		if err != nil {
			log.Printf("token issue failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		name := p.DisplayName(c.Request.Context(), principal.ID)
		mailer.SendAsync(p.Mail, principal.Email, "RESET PASSWORD - Lifts For Life",
			mailer.PasswordResetBody(name, p.ResetURL(token)))

		c.JSON(http.StatusOK, gin.H{"message": "please check your email to reset your password"})
	}
}

// SetPassword rehashes the guarded principal's password. Previously issued
// session tokens remain valid until expiry.
func (p *PrincipalAuth) SetPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.SetPasswordDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		id, ok := middleware.PrincipalID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		err := p.Creds.SetPassword(c.Request.Context(), id, body.Password)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		if err != nil {
			log.Printf("set password failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "password updated"})
	}
}

// ChangeEmail updates the stored address, drops the confirmation flag and
// mails a confirmation link to the new mailbox. The mutation lands before
// the new address is verified.
func (p *PrincipalAuth) ChangeEmail() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ChangeEmailDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		id, ok := middleware.PrincipalID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		name := p.DisplayName(c.Request.Context(), id)

		err := p.Creds.ChangeEmail(c.Request.Context(), id, body.Email)
		if errors.Is(err, store.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already exists", "field": "email"})
			return
		}
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		if err != nil {
			log.Printf("change email failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		token, err := p.Issuer.Issue(id)
		if err != nil {
			log.Printf("token issue failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		mailer.SendAsync(p.Mail, body.Email, "CONFIRM EMAIL - Lifts For Life",
			mailer.EmailChangeBody(name, p.ConfirmURL(token)))

		c.JSON(http.StatusOK, gin.H{"message": "email updated, please check your inbox"})
	}
}

// ResendConfirmation re-issues the confirmation link for an unconfirmed
// account.
func (p *PrincipalAuth) ResendConfirmation() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := middleware.PrincipalID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		principal, err := p.Creds.FindByID(c.Request.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		if err != nil {
			log.Printf("resend confirmation lookup failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		if principal.EmailConfirmed {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already confirmed"})
			return
		}

		token, err := p.Issuer.Issue(id)
		if err != nil {
			log.Printf("token issue failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		name := p.DisplayName(c.Request.Context(), id)
		mailer.SendAsync(p.Mail, principal.Email, "CONFIRM EMAIL - Lifts For Life",
			mailer.ConfirmationBody(name, p.ConfirmURL(token)))

		c.JSON(http.StatusOK, gin.H{"message": "confirmation email sent, please check your inbox"})
	}
}
