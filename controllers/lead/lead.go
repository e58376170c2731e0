package leadcontroller

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/Raj-baniya/copy-of-Giftology/models"
	"github.com/Raj-baniya/copy-of-Giftology/notify"
	"github.com/Raj-baniya/copy-of-Giftology/phoneauth"
	"github.com/Raj-baniya/copy-of-Giftology/repository"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type Deps struct {
	Verifier phoneauth.Verifier
	Leads    repository.LeadRepository
	Notifier notify.Gateway
	Log      zerolog.Logger
	Now      func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

type FeedbackRequest struct {
	Name           string `json:"name" validate:"required"`
	Phone          string `json:"phone" validate:"required,len=10,number"`
	Email          string `json:"email" validate:"required,email"`
	Message        string `json:"message" validate:"required"`
	RecaptchaToken string `json:"recaptcha_token"`
}

type VerifyRequest struct {
	Handle  string `json:"handle" validate:"required"`
	Code    string `json:"code" validate:"required,len=6,number"`
	Message string `json:"message" validate:"required"`
	// Name and Email fill in what the verifier does not return (SMS codes only prove the phone).
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
}

type MobileRequest struct {
	Name   string `json:"name" validate:"required"`
	Mobile string `json:"mobile" validate:"required,len=10,number"`
	Email  string `json:"email" validate:"required,email"`
}

var fieldMessages = map[string]string{
	"name":    "Name is required",
	"phone":   "Phone number must be exactly 10 digits",
	"mobile":  "Mobile number must be exactly 10 digits",
	"email":   "Please enter a valid email address",
	"message": "Message is required",
	"handle":  "Verification request is missing",
	"code":    "Enter the 6-digit code",
}

var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	return v
}()

// bind decodes and trims the body into req, answering 400 with the first broken rule.
func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return false
	}
	trimStrings(req)

	var errs validator.ValidationErrors
	if err := validate.Struct(req); errors.As(err, &errs) && len(errs) > 0 {
		msg, ok := fieldMessages[errs[0].Field()]
		if !ok {
			msg = errs[0].Field() + " is invalid"
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return false
	}
	return true
}

func trimStrings(req interface{}) {
	v := reflect.ValueOf(req).Elem()
	for i := 0; i < v.NumField(); i++ {
		if f := v.Field(i); f.Kind() == reflect.String && f.CanSet() {
			f.SetString(strings.TrimSpace(f.String()))
		}
	}
}

// record stores the lead and alerts the operator. The alert is best effort.
func record(c *gin.Context, d Deps, lead models.ContactLead) bool {
	ctx := c.Request.Context()
	lead.CreatedAt = d.now()

	if err := d.Leads.CreateLead(ctx, &lead); err != nil {
		d.Log.Error().Err(err).Str("source", lead.Source).Msg("lead write failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save your details, please try again"})
		return false
	}

	err := d.Notifier.SendLeadAlert(ctx, notify.LeadNotice{
		Name:    lead.Name,
		Email:   lead.Email,
		Phone:   lead.Phone,
		Message: lead.Message,
		Source:  lead.Source,
		At:      lead.CreatedAt,
	})
	if err != nil {
		d.Log.Warn().Err(err).Uint("lead_id", lead.ID).Msg("lead alert failed")
	}
	return true
}

// POST /leads/otp
func RequestCode(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FeedbackRequest
		if !bind(c, &req) {
			return
		}

		handle, err := d.Verifier.SendCode(c.Request.Context(), phoneauth.Recipient{
			Name:           req.Name,
			Email:          req.Email,
			Phone:          req.Phone,
			RecaptchaToken: req.RecaptchaToken,
		})
		if err != nil {
			d.Log.Error().Err(err).Msg("verification code send failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Could not send the verification code, please try again"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"handle": handle, "message": "Verification code sent"})
	}
}

// POST /leads/verify
func VerifyCode(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyRequest
		if !bind(c, &req) {
			return
		}

		who, err := d.Verifier.Confirm(c.Request.Context(), phoneauth.Handle(req.Handle), req.Code)
		switch {
		case errors.Is(err, phoneauth.ErrInvalidCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case errors.Is(err, phoneauth.ErrCodeExpired):
			c.JSON(http.StatusGone, gin.H{"error": err.Error()})
			return
		case errors.Is(err, phoneauth.ErrTooManyAttempts):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
			return
		case err != nil:
			d.Log.Error().Err(err).Msg("verification failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Could not verify the code, please try again"})
			return
		}

		if who.Name == "" {
			who.Name = req.Name
		}
		if who.Email == "" {
			who.Email = req.Email
		}
		if who.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": fieldMessages["name"]})
			return
		}

		if !record(c, d, models.ContactLead{
			Name:    who.Name,
			Email:   who.Email,
			Phone:   who.Phone,
			Message: req.Message,
			Source:  models.LeadSourceFeedback,
		}) {
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Thank you! We will get back to you soon."})
	}
}

// POST /leads/mobile
func CaptureMobile(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MobileRequest
		if !bind(c, &req) {
			return
		}

		if !record(c, d, models.ContactLead{
			Name:   req.Name,
			Email:  req.Email,
			Phone:  req.Mobile,
			Source: models.LeadSourceMobileCapture,
		}) {
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Thanks! We'll be in touch."})
	}
}
