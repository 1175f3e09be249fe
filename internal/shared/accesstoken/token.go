// Package accesstoken собирает и подписывает access-токены (JWT) для клиентов чата.
//
// Пакет отвечает за:
//   - накопление грантов (capability) и identity пользователя;
//   - сборку claims (jti, nbf, exp, iss, sub, grants);
//   - подпись токена общим секретом по алгоритму из allow-list (HS256/HS384/HS512).
//
// Пакет не читает окружение, не логирует и не хранит выданные токены:
// все параметры передаются явно в конструктор.
package accesstoken

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	serr "github.com/IvanChernomyrdin/go-chat-token/internal/shared/errors"
)

const (
	// DefaultTTL — срок жизни токена, если ttl не задан.
	DefaultTTL = 3600 * time.Second
	// DefaultAlgorithm — алгоритм подписи по умолчанию.
	DefaultAlgorithm = "HS256"
	// ContentType — значение заголовка cty.
	ContentType = "twilio-fpa;v=1"
)

// поддерживаемые алгоритмы в порядке вывода в ошибке
var algorithms = []string{"HS256", "HS384", "HS512"}

var signingMethods = map[string]jwt.SigningMethod{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// Algorithms возвращает список поддерживаемых алгоритмов подписи.
func Algorithms() []string {
	out := make([]string, len(algorithms))
	copy(out, algorithms)
	return out
}

// IsSupportedAlgorithm проверяет, входит ли алгоритм в allow-list.
// Пустая строка считается алгоритмом по умолчанию.
func IsSupportedAlgorithm(alg string) bool {
	if alg == "" {
		return true
	}
	_, ok := signingMethods[alg]
	return ok
}

// Claims — payload подписанного токена.
type Claims struct {
	Grants map[string]any `json:"grants"`
	jwt.RegisteredClaims
}

// AccessToken — токен, который собирается на один запрос и подписывается один раз.
//
// Identity задаётся напрямую, гранты добавляются через AddGrant.
// Экземпляр не потокобезопасен: им владеет один обработчик запроса.
type AccessToken struct {
	// Identity — пользователь, от имени которого действует клиент (опционально).
	Identity string
	// Now — источник времени; nil означает time.Now.
	Now func() time.Time

	accountSID string
	keySID     string
	secret     []byte
	ttl        time.Duration
	grants     []Grant
}

// New создаёт токен для аккаунта accountSID, подписываемый ключом keySID/secret.
//
// Если accountSID, keySID или secret пустые, возвращается ErrMissingParameter.
// ttl <= 0 заменяется на DefaultTTL.
func New(accountSID, keySID string, secret []byte, ttl time.Duration) (*AccessToken, error) {
	switch {
	case accountSID == "":
		return nil, fmt.Errorf("%w: accountSid is required", serr.ErrMissingParameter)
	case keySID == "":
		return nil, fmt.Errorf("%w: keySid is required", serr.ErrMissingParameter)
	case len(secret) == 0:
		return nil, fmt.Errorf("%w: secret is required", serr.ErrMissingParameter)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &AccessToken{
		accountSID: accountSID,
		keySID:     keySID,
		secret:     secret,
		ttl:        ttl,
		grants:     []Grant{},
	}, nil
}

// AccountSID возвращает аккаунт, на который выписывается токен (sub).
func (t *AccessToken) AccountSID() string { return t.accountSID }

// KeySID возвращает идентификатор ключа подписи (iss).
func (t *AccessToken) KeySID() string { return t.keySID }

// TTL возвращает срок жизни токена.
func (t *AccessToken) TTL() time.Duration { return t.ttl }

// AddGrant добавляет грант в конец списка.
func (t *AccessToken) AddGrant(g Grant) {
	t.grants = append(t.grants, g)
}

// Grants возвращает копию списка грантов в порядке добавления.
func (t *AccessToken) Grants() []Grant {
	out := make([]Grant, len(t.grants))
	copy(out, t.grants)
	return out
}

// ToJWT подписывает токен и возвращает компактную строку JWT.
//
// algorithm == "" означает DefaultAlgorithm. Для алгоритма вне allow-list
// возвращается ErrUnsupportedAlgorithm. Ошибки подписи возвращаются как есть.
//
// jti строится как "<keySID>-<unix seconds>", поэтому два вызова в одну секунду
// с одним ключом дают одинаковый jti.
func (t *AccessToken) ToJWT(algorithm string) (string, error) {
	if algorithm == "" {
		algorithm = DefaultAlgorithm
	}
	method, ok := signingMethods[algorithm]
	if !ok {
		return "", fmt.Errorf("%w: %q, algorithm must be one of: %s",
			serr.ErrUnsupportedAlgorithm, algorithm, strings.Join(algorithms, ", "))
	}

	claims := t.claims(t.now())

	tok := jwt.NewWithClaims(method, claims)
	tok.Header["cty"] = ContentType
	tok.Header["typ"] = "JWT"

	return tok.SignedString(t.secret)
}

func (t *AccessToken) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

// claims собирает payload; время округляется до целых секунд.
func (t *AccessToken) claims(at time.Time) Claims {
	now := time.Unix(at.Unix(), 0)

	grants := make(map[string]any, len(t.grants)+1)
	if t.Identity != "" {
		grants["identity"] = t.Identity
	}
	for _, g := range t.grants {
		grants[g.Key()] = g.Payload()
	}

	return Claims{
		Grants: grants,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        t.keySID + "-" + strconv.FormatInt(now.Unix(), 10),
			Issuer:    t.keySID,
			Subject:   t.accountSID,
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
}
