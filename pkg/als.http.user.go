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

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func SetupUserRoutes(api fiber.Router) {

	api.Route("/auth", func(router fiber.Router) {
		router.Post("/register", HandleRegisterUser)
		router.Post("/login", HandleLoginUser)
		router.Post("/refresh", ALSAuth, HandleRefreshAccessToken)
		router.Post("/logout", ALSAuth, HandleLogoutUser)
	})

	api.Route("/user", func(router fiber.Router) {
		router.Get("/list", ALSAuth, HandleGetUserList)
	})
}

/* AUTHENTICATE USER AND GET THEIR ROLE */
func ALSAuth(c *fiber.Ctx) (err error) {

	authorization := c.Get("Authorization")

	tokenString := ""
	if strings.HasPrefix(authorization, "Bearer ") {
		tokenString = strings.TrimPrefix(authorization, "Bearer ")
	} else if c.Cookies("token") != "" {
		tokenString = c.Cookies("token")
	} else if c.Query("access_token") != "" {
		tokenString = c.Query("access_token")
	}
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).SendString("Please log in.")
	}

	claims, err := GetClaimsFromTokenString(tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).SendString(err.Error())
	}

	/* THE ROLE COMES FROM THE LIVE USER RECORD, NOT THE TOKEN CLAIM */
	user, err := GetUserByID(fmt.Sprintf("%v", claims["sub"]))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).SendString(err.Error())
	}

	c.Locals("role", user.Role)
	c.Locals("sub", claims["sub"])

	return c.Next()
}

func HandleWSUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("allowed", true)
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

/* CREATE A NEW USER WITH DEFAULT ROLES */
func HandleRegisterUser(c *fiber.Ctx) (err error) {

	/* PARSE AND VALIDATE REQUEST DATA */
	runp := RegisterUserInput{}
	if err := c.BodyParser(&runp); err != nil {
		txt := fmt.Sprintf("Invalid request body: %s", err.Error())
		return c.Status(fiber.StatusBadRequest).SendString(txt)
	}

	if errors := ValidateStruct(runp); errors != nil {
		txt := fmt.Sprintf("Invalid request body: %v", errors)
		return c.Status(fiber.StatusBadRequest).SendString(txt)
	}

	if runp.Password != runp.PasswordConfirm {
		return c.Status(fiber.StatusBadRequest).SendString("Passwords do not match.")
	}

	user, err := RegisterUser(runp)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user.FilterUserRecord()})
}

/* AUTHENTICATE USER INPUT AND RETURN JWTs */
func HandleLoginUser(c *fiber.Ctx) (err error) {

	/* PARSE AND VALIDATE REQUEST DATA */
	lunp := LoginUserInput{}
	if err := c.BodyParser(&lunp); err != nil {
		txt := fmt.Sprintf("Invalid request body: %s", err.Error())
		return c.Status(fiber.StatusBadRequest).SendString(txt)
	}

	if errors := ValidateStruct(lunp); errors != nil {
		txt := fmt.Sprintf("Invalid request body: %v", errors)
		return c.Status(fiber.StatusBadRequest).SendString(txt)
	}

	/* ATTEMPT LOGIN */
	us, err := LoginUser(lunp)
	if err != nil {
		txt := fmt.Sprintf("Login failed: %v", err)
		return c.Status(fiber.StatusUnauthorized).SendString(txt)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"user_session": us})
}

/* VERIFY REFRESH TOKEN AND RETURN NEW ACCESS TOKEN */
func HandleRefreshAccessToken(c *fiber.Ctx) (err error) {

	/* PARSE AND VALIDATE REQUEST DATA */
	us := UserSession{}
	if err := c.BodyParser(&us); err != nil {
		txt := fmt.Sprintf("Invalid request body: %s", err.Error())
		return c.Status(fiber.StatusBadRequest).SendString(txt)
	}

	if err = us.RefreshAccessToken(); err != nil {
		txt := fmt.Sprintf("Token refresh failed: %s", err.Error())
		return c.Status(fiber.StatusUnauthorized).SendString(txt)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"user_session": us})
}

func HandleLogoutUser(c *fiber.Ctx) (err error) {

	us := UserSession{}
	if err := c.BodyParser(&us); err != nil {
		txt := fmt.Sprintf("Invalid request body: %s", err.Error())
		return c.Status(fiber.StatusBadRequest).SendString(txt)
	}

	us.LogoutUser()
	return c.Status(fiber.StatusOK).SendString("Logged out.")
}

func HandleGetUserList(c *fiber.Ctx) (err error) {

	users := []User{}
	if err = GetUsers(&users); err != nil {
		LogErr(err)
		return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}

	list := []UserResponse{}
	for i := range users {
		list = append(list, users[i].FilterUserRecord())
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"users": list})
}
