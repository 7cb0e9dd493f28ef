// Package oauth implements the server-side Kakao code flow for web clients.
// Mobile clients authenticate through the Kakao SDK and post the resulting
// profile to /user/kakao directly.
package oauth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
)

var kakaoEndpoint = oauth2.Endpoint{
	AuthURL:  "https://kauth.kakao.com/oauth/authorize",
	TokenURL: "https://kauth.kakao.com/oauth/token",
}

const kakaoProfileURL = "https://kapi.kakao.com/v2/user/me"

type KakaoOAuth struct {
	cfg      *oauth2.Config
	stateKey []byte
}

func NewKakao(clientID, clientSecret, redirectURI, stateSecret string) *KakaoOAuth {
	return &KakaoOAuth{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       []string{"profile_nickname", "account_email"},
			Endpoint:     kakaoEndpoint,
		},
		stateKey: []byte(stateSecret),
	}
}

// MakeState signs the raw value so the callback can reject forged states.
func (k *KakaoOAuth) MakeState(raw string) string {
	mac := hmac.New(sha256.New, k.stateKey)
	mac.Write([]byte(raw))
	return raw + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (k *KakaoOAuth) VerifyState(got string) bool {
	i := strings.IndexByte(got, '.')
	if i < 0 {
		return false
	}
	sig, err := base64.RawURLEncoding.DecodeString(got[i+1:])
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, k.stateKey)
	mac.Write([]byte(got[:i]))
	return hmac.Equal(mac.Sum(nil), sig)
}

func (k *KakaoOAuth) AuthURL(state string) string {
	return k.cfg.AuthCodeURL(state)
}

// Profile is the slice of the Kakao account this service cares about.
type Profile struct {
	ID       string
	NickName string
	Email    string
}

// ExchangeAndFetch trades the authorization code for a token and loads the
// user's profile from the Kakao API.
func (k *KakaoOAuth) ExchangeAndFetch(ctx context.Context, code string) (*Profile, error) {
	tok, err := k.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("kakao exchange: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, kakaoProfileURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := k.cfg.Client(ctx, tok).Do(req)
	if err != nil {
		return nil, fmt.Errorf("kakao profile: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("kakao profile: status %d", resp.StatusCode)
	}

	var body struct {
		ID         int64 `json:"id"`
		Properties struct {
			Nickname string `json:"nickname"`
		} `json:"properties"`
		KakaoAccount struct {
			Email string `json:"email"`
		} `json:"kakao_account"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("kakao profile decode: %w", err)
	}
	if body.ID == 0 {
		return nil, fmt.Errorf("kakao profile: missing id")
	}

	return &Profile{
		ID:       strconv.FormatInt(body.ID, 10),
		NickName: body.Properties.Nickname,
		Email:    body.KakaoAccount.Email,
	}, nil
}
