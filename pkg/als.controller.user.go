/* Asset Lifecycle Server (ALS) is a component of the Datacan Data2Desk (D2D) Platform.
License:

	[PROPER LEGALESE HERE...]

	INTERIM LICENSE DESCRIPTION:
	In spirit, this license:
	1. Allows <Third Party> to use, modify, and / or distributre this software in perpetuity so long as <Third Party> understands:
		a. The software is porvided as is without guarantee of additional support from DataCan in any form.
		b. The software is porvided as is without guarantee of exclusivity.

	2. Prohibits <Third Party> from taking any action which might interfere with DataCan's right to use, modify and / or distributre this software in perpetuity.
*/

package pkg

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserSession struct {
	SID    uuid.UUID    `json:"sid"`
	REFTok string       `json:"ref_token"`
	ACCTok string       `json:"acc_token"`
	USR    UserResponse `json:"user"`
}

type UserSessionMap map[string]UserSession

var UserSessions = make(UserSessionMap)
var UserSessionsRWMutex = sync.RWMutex{}

func UserSessionsMapWrite(u UserSession) (err error) {

	sid := u.SID.String()
	if sid == "" || sid == "00000000-0000-0000-0000-000000000000" {
		err = fmt.Errorf("Invalid user session ID.")
		return
	}

	UserSessionsRWMutex.Lock()
	UserSessions[sid] = u
	UserSessionsRWMutex.Unlock()
	return
}
func UserSessionsMapRead(sid string) (u UserSession, err error) {
	UserSessionsRWMutex.Lock()
	u = UserSessions[sid]
	UserSessionsRWMutex.Unlock()

	if u.SID.String() == "00000000-0000-0000-0000-000000000000" {
		err = fmt.Errorf("User session not found. Please log in.")
	}
	return
}
func UserSessionsMapRemove(sid string) {
	UserSessionsRWMutex.Lock()
	delete(UserSessions, sid)
	UserSessionsRWMutex.Unlock()
}

/* CREATE A NEW USER WITH DEFAULT ROLES */
func RegisterUser(runp RegisterUserInput) (user User, err error) {

	pwHash, err := bcrypt.GenerateFromPassword([]byte(runp.Password), bcrypt.DefaultCost)
	if err != nil {
		err = fmt.Errorf("Failed to hash password: %s", err.Error())
		return
	}

	user = User{
		Name:     runp.Name,
		Email:    strings.ToLower(runp.Email),
		Password: string(pwHash),
		Role:     ROLE_VIEWER,
	}

	res := ALS.DB.Create(&user)
	err = res.Error
	return
}

/* VERIFY CREDENTIALS, CREATE A MAPPED SESSION AND SIGN TOKENS */
func LoginUser(lunp LoginUserInput) (us UserSession, err error) {

	user := User{}
	ALS.DB.First(&user, "email = ?", strings.ToLower(lunp.Email))
	if user.ID.String() == "00000000-0000-0000-0000-000000000000" {
		err = fmt.Errorf("Invalid email or password.")
		return
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(lunp.Password)); err != nil {
		err = fmt.Errorf("Invalid email or password.")
		return
	}

	us = UserSession{
		SID: uuid.New(),
		USR: user.FilterUserRecord(),
	}
	if err = us.CreateJWTRefreshToken(ALS_CFG.JWTRefreshDur); err != nil {
		return
	}
	if err = us.CreateJWTAccessToken(); err != nil {
		return
	}

	err = UserSessionsMapWrite(us)
	return
}

/* RETURNS ALL TOKEN CLAIMS */
func GetClaimsFromTokenString(token string) (claims jwt.MapClaims, err error) {

	tokenByte, err := jwt.Parse(token, func(jwtToken *jwt.Token) (interface{}, error) {
		if _, jwt_err := jwtToken.Method.(*jwt.SigningMethodHMAC); !jwt_err {
			return nil, fmt.Errorf("Unexpected signing method: %s", jwtToken.Header["alg"])
		}
		return []byte(ALS_CFG.JWTSecret), nil
	})
	if err != nil {
		return
	}

	claims, ok := tokenByte.Claims.(jwt.MapClaims)
	if !ok || !tokenByte.Valid {
		err = fmt.Errorf("Invalid token claim.")
		return
	}
	return
}

/* REMOVES THE SESSION FOR GIVEN USER FROM UserSessionsMap */
func (us *UserSession) LogoutUser() {
	UserSessionsMapRemove(us.SID.String())
}

/* CREATES A NEW ACCESS TOKEN IF REFRESH TOKEN HAS NOT EXPIRED */
func (us *UserSession) RefreshAccessToken() (err error) {

	/* GET USER FROM SESSION MAP */
	mus, err := UserSessionsMapRead(us.SID.String())
	if err != nil {
		return
	}

	/* CHECK REFRESH TOKEN EXPIRE DATE IN MAPPED USER SESSION. IF TIMEOUT, DENY */
	ref_claims, err := GetClaimsFromTokenString(mus.REFTok)
	if err != nil {
		return err
	}
	exp := 0
	now := int(time.Now().Unix())
	if fExp, ok := ref_claims["exp"].(float64); ok {
		exp = int(fExp)
	}

	if exp < now {
		return fmt.Errorf("Your refresh token has expired. Please log in.")
	}

	us.USR = mus.USR
	if err = us.CreateJWTAccessToken(); err != nil {
		return
	}

	return UserSessionsMapWrite(*us)
}

/* CREATES A JWT REFRESH TOKEN; USED ON LOGIN ONLY */
func (us *UserSession) CreateJWTRefreshToken(dur time.Duration) (err error) {

	tokByte := jwt.New(jwt.SigningMethodHS256)
	tokClaims := tokByte.Claims.(jwt.MapClaims)
	tokClaims["sub"] = us.USR.ID // SUBJECT
	tokClaims["exp"] = time.Now().UTC().Add(dur).Unix()

	us.REFTok, err = tokByte.SignedString([]byte(ALS_CFG.JWTSecret))
	if err != nil {
		err = fmt.Errorf("Failed to sign refresh token: %s", err.Error())
	}
	return
}

/* CREATES A JWT ACCESS TOKEN; USED ON LOGIN AND SUBSEQUENT REFRESHES */
func (us *UserSession) CreateJWTAccessToken() (err error) {

	now := time.Now().UTC()

	claims := jwt.MapClaims{
		"sub": us.USR.ID,   // SUBJECT
		"rol": us.USR.Role, // ROLE
		"exp": now.Add(ALS_CFG.JWTExpiredIn).Unix(),
		"iat": now.Unix(), // ISSUED AT
		"nbf": now.Unix(), // NOT VALID BEFORE
	}
	tokenByte := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	us.ACCTok, err = tokenByte.SignedString([]byte(ALS_CFG.JWTSecret))
	if err != nil {
		err = fmt.Errorf("Failed to sign access token: %s", err.Error())
	}
	return
}

func GetUserByID(userID interface{}) (user User, err error) {

	ALS.DB.First(&user, "id = ?", userID)
	if user.ID.String() != userID {
		err = fmt.Errorf("The user belonging to this token no longer exists.")
	}
	return
}

func GetUsers(users *[]User) (err error) {

	res := ALS.DB.Order("name ASC").Find(users)
	return res.Error
}
