package phoneauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const identityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

// FirebasePhone texts the code to an Indian mobile number through Firebase
// phone authentication.
type FirebasePhone struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

var _ Verifier = (*FirebasePhone)(nil)

func NewFirebasePhone(apiKey string) *FirebasePhone {
	return newFirebasePhone(apiKey, identityToolkitURL)
}

func newFirebasePhone(apiKey, baseURL string) *FirebasePhone {
	return &FirebasePhone{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// E164 turns a 10 digit mobile number into +91XXXXXXXXXX.
func E164(mobile string) string {
	if strings.HasPrefix(mobile, "+") {
		return mobile
	}
	return "+91" + mobile
}

func (f *FirebasePhone) SendCode(ctx context.Context, to Recipient) (Handle, error) {
	var resp struct {
		SessionInfo string `json:"sessionInfo"`
	}
	err := f.call(ctx, "accounts:sendVerificationCode", map[string]string{
		"phoneNumber":    E164(to.Phone),
		"recaptchaToken": to.RecaptchaToken,
	}, &resp)
	if err != nil {
		return "", err
	}
	return Handle(resp.SessionInfo), nil
}

func (f *FirebasePhone) Confirm(ctx context.Context, h Handle, code string) (Recipient, error) {
	var resp struct {
		PhoneNumber string `json:"phoneNumber"`
	}
	err := f.call(ctx, "accounts:signInWithPhoneNumber", map[string]string{
		"sessionInfo": string(h),
		"code":        strings.TrimSpace(code),
	}, &resp)
	if err != nil {
		return Recipient{}, err
	}
	return Recipient{Phone: strings.TrimPrefix(resp.PhoneNumber, "+91")}, nil
}

func (f *FirebasePhone) call(ctx context.Context, method string, body map[string]string, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/%s?key=%s", f.baseURL, method, f.apiKey), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		switch {
		case strings.HasPrefix(e.Error.Message, "INVALID_CODE"):
			return ErrInvalidCode
		case strings.HasPrefix(e.Error.Message, "SESSION_EXPIRED"),
			strings.HasPrefix(e.Error.Message, "INVALID_SESSION_INFO"):
			return ErrCodeExpired
		}
		return fmt.Errorf("phone verification: %s", e.Error.Message)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
