package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Method is the login variant of a user account. Exactly one is active per
// user; the matching subdocument carries the external identity.
type Method string

const (
	MethodLocal    Method = "local"
	MethodKakao    Method = "kakao"
	MethodNaver    Method = "naver"
	MethodApple    Method = "apple"
	MethodFacebook Method = "facebook"
)

func (m Method) Valid() bool {
	switch m {
	case MethodLocal, MethodKakao, MethodNaver, MethodApple, MethodFacebook:
		return true
	}
	return false
}

// LocalAccount exists only on method=local users.
type LocalAccount struct {
	ID           string `bson:"id,omitempty" json:"id,omitempty"`
	PasswordHash string `bson:"password,omitempty" json:"-"`
}

// ProviderAccount holds the external id issued by a social provider.
type ProviderAccount struct {
	ID string `bson:"id,omitempty" json:"id,omitempty"`
}

const DefaultProfileImgURL = "https://kr.object.ncloudstorage.com/because/image/Profile_default%403x.png"

type User struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	Method   Method           `bson:"method" json:"method"`
	Local    *LocalAccount    `bson:"local,omitempty" json:"local,omitempty"`
	Kakao    *ProviderAccount `bson:"kakao,omitempty" json:"-"`
	Naver    *ProviderAccount `bson:"naver,omitempty" json:"-"`
	Apple    *ProviderAccount `bson:"apple,omitempty" json:"-"`
	Facebook *ProviderAccount `bson:"facebook,omitempty" json:"-"`

	Email           string     `bson:"email,omitempty" json:"email"`
	IsEmailVerified bool       `bson:"isEmailVerified" json:"isEmailVerified"`
	NickName        string     `bson:"nickName,omitempty" json:"nickName"`
	Birthday        *time.Time `bson:"birthday,omitempty" json:"birthday,omitempty"`
	Gender          string     `bson:"gender,omitempty" json:"gender,omitempty"`
	ProfileImgURL   string     `bson:"profileImgUrl" json:"profileImgUrl"`

	AgreeService      bool `bson:"agreeService" json:"agreeService"`
	AgreePersonalInfo bool `bson:"agreePersonalInfo" json:"agreePersonalInfo"`
	IsNotiAllowed     bool `bson:"isNotiAllowed" json:"isNotiAllowed"`

	// Verification code: only the bcrypt hash is stored, with its expiry.
	TokenHash       string    `bson:"token,omitempty" json:"-"`
	TokenExpiration time.Time `bson:"tokenExpiration,omitempty" json:"-"`

	Game `bson:",inline"`

	FavoriteTuts []primitive.ObjectID `bson:"favoriteTuts" json:"favoriteTuts"`
	Stories      []primitive.ObjectID `bson:"stories" json:"stories"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewUser seeds a user of the given method with the default game state.
func NewUser(method Method, email, nickName string) *User {
	now := time.Now().UTC()
	return &User{
		Method:        method,
		Email:         email,
		NickName:      nickName,
		ProfileImgURL: DefaultProfileImgURL,
		Game:          NewGame(now),
		FavoriteTuts:  []primitive.ObjectID{},
		Stories:       []primitive.ObjectID{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ProviderID returns the external id for the user's active method, if any.
func (u *User) ProviderID() string {
	var p *ProviderAccount
	switch u.Method {
	case MethodKakao:
		p = u.Kakao
	case MethodNaver:
		p = u.Naver
	case MethodApple:
		p = u.Apple
	case MethodFacebook:
		p = u.Facebook
	}
	if p == nil {
		return ""
	}
	return p.ID
}

// SetProvider attaches the external id subdocument for the given method.
func (u *User) SetProvider(method Method, externalID string) {
	p := &ProviderAccount{ID: externalID}
	switch method {
	case MethodKakao:
		u.Kakao = p
	case MethodNaver:
		u.Naver = p
	case MethodApple:
		u.Apple = p
	case MethodFacebook:
		u.Facebook = p
	}
}

func (u *User) IsFavorite(tutID primitive.ObjectID) bool {
	for _, id := range u.FavoriteTuts {
		if id == tutID {
			return true
		}
	}
	return false
}
