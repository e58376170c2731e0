package orderControllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Raj-baniya/copy-of-Giftology/checkout"
	"github.com/Raj-baniya/copy-of-Giftology/identity"
	"github.com/Raj-baniya/copy-of-Giftology/middleware"
	"github.com/Raj-baniya/copy-of-Giftology/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const maxProofBytes = 5 << 20

// -------- Request Structs --------
type BeginCheckoutRequest struct {
	Items []checkout.LineRequest `json:"items" binding:"required,min=1,dive"`
}

type sessionView struct {
	*checkout.Session
	Totals     checkout.Totals `json:"totals"`
	FastTotals checkout.Totals `json:"fast_delivery_totals"`
}

// -------- Helpers --------

// actorFrom resolves who is checking out from the (optional) bearer token.
func actorFrom(c *gin.Context) identity.Actor {
	if claims, ok := middleware.Claims(c); ok && !claims.IsGuest() {
		return identity.Registered(claims.User())
	}
	return identity.Guest(models.GuestContact{})
}

// owns reports whether the caller may act on sess. Guest sessions are
// reachable by id alone; registered ones only by the same account.
func owns(c *gin.Context, sess *checkout.Session) bool {
	user, ok := sess.Actor.User()
	if !ok {
		return true
	}
	claims, ok := middleware.Claims(c)
	return ok && claims.UserID == user.ID
}

func view(svc *checkout.Service, sess *checkout.Session) sessionView {
	return sessionView{Session: sess, Totals: svc.Totals(sess, false), FastTotals: svc.Totals(sess, true)}
}

func checkoutError(c *gin.Context, log zerolog.Logger, err error) {
	switch {
	case checkout.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, checkout.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, checkout.ErrWrongStep), errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, checkout.ErrOrderNotPlaced):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": checkout.ErrOrderNotPlaced.Error()})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("checkout request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}

// loadOwned fetches the session named in the URL and checks the caller may use it.
func loadOwned(c *gin.Context, svc *checkout.Service, log zerolog.Logger) (*checkout.Session, bool) {
	sess, err := svc.Get(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		checkoutError(c, log, err)
		return nil, false
	}
	if !owns(c, sess) {
		c.JSON(http.StatusNotFound, gin.H{"error": checkout.ErrSessionNotFound.Error()})
		return nil, false
	}
	return sess, true
}

// -------- Handlers --------

// POST /checkout
func BeginCheckoutHandler(svc *checkout.Service, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BeginCheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": checkout.ErrEmptyCart.Error()})
			return
		}

		sess, err := svc.Begin(c.Request.Context(), actorFrom(c), req.Items)
		if err != nil {
			checkoutError(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, view(svc, sess))
	}
}

// GET /checkout/:sessionID
func GetCheckoutHandler(svc *checkout.Service, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := loadOwned(c, svc, log)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, view(svc, sess))
	}
}

// POST /checkout/:sessionID/shipping
func SubmitShippingHandler(svc *checkout.Service, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := loadOwned(c, svc, log); !ok {
			return
		}

		var form checkout.ShippingForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		sess, err := svc.SubmitShipping(c.Request.Context(), c.Param("sessionID"), form)
		if err != nil {
			checkoutError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, view(svc, sess))
	}
}

// POST /checkout/:sessionID/back
func BackHandler(svc *checkout.Service, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := loadOwned(c, svc, log); !ok {
			return
		}

		sess, err := svc.Back(c.Request.Context(), c.Param("sessionID"))
		if err != nil {
			checkoutError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, view(svc, sess))
	}
}

// POST /checkout/:sessionID/payment
//
// Multipart form: payment_method (upi|cod), fast_delivery (bool) and, for
// UPI, the payment screenshot in "proof".
func SubmitPaymentHandler(svc *checkout.Service, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := loadOwned(c, svc, log); !ok {
			return
		}

		in := checkout.PaymentInput{Method: c.PostForm("payment_method")}
		in.FastDelivery, _ = strconv.ParseBool(c.PostForm("fast_delivery"))

		if fh, err := c.FormFile("proof"); err == nil {
			if fh.Size > maxProofBytes {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Payment screenshot must be 5 MB or smaller"})
				return
			}
			f, err := fh.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read the payment screenshot"})
				return
			}
			in.Proof, err = io.ReadAll(f)
			f.Close()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read the payment screenshot"})
				return
			}
		}

		res, err := svc.SubmitPayment(c.Request.Context(), c.Param("sessionID"), in)
		if err != nil {
			checkoutError(c, log, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":  res.Session.Message,
			"order":    res.Order,
			"notified": res.Notified,
			"session":  view(svc, res.Session),
		})
	}
}
