package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Agent-cat/Midland/apperr"
	"github.com/Agent-cat/Midland/config"
	"github.com/Agent-cat/Midland/models"
	"github.com/Agent-cat/Midland/otp"
	"github.com/Agent-cat/Midland/sms"
	"github.com/Agent-cat/Midland/utils"
)

// otpContextContact marks a send-otp request coming from the contact-reveal
// flow, which must work for phones that already belong to an account.
const otpContextContact = "contact"

type AuthController struct {
	users *mongo.Collection
	gate  *otp.Gate
}

func NewAuthController() *AuthController {
	return &AuthController{
		users: config.GetCollection(config.CollectionName("MONGODB_COLLECTION_USER", "user")),
		gate:  otp.NewGate(otp.StoreFromEnv(), sms.SenderFromEnv()),
	}
}

// SendOTP issues a phone-ownership challenge. The registration flow rejects
// phones that already have an account; the contact-reveal flow skips that
// check.
func (ac *AuthController) SendOTP(c echo.Context) error {
	var req models.SendOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if !utils.IsValidPhone(req.Phone) {
		return fail(c, apperr.Validation("Phone number must be 10 digits"))
	}

	ctx := c.Request().Context()
	if req.Context != otpContextContact {
		err := ac.users.FindOne(ctx, bson.M{"phno": req.Phone}).Err()
		if err == nil {
			return fail(c, apperr.Conflict("Phone number already registered"))
		}
		if err != mongo.ErrNoDocuments {
			return fail(c, apperr.Internal("Failed to check phone number", err))
		}
	}

	if err := ac.gate.Issue(ctx, req.Phone); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "OTP sent successfully"})
}

// VerifyOTP consumes the challenge on success. Mismatches report the
// remaining attempt budget.
func (ac *AuthController) VerifyOTP(c echo.Context) error {
	var req models.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if err := ac.gate.Verify(c.Request().Context(), req.Phone, req.OTP); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "OTP verified successfully"})
}

// Signup creates an account once the phone challenge checks out. The OTP
// record is cleared only after the account exists, so a failed insert leaves
// the challenge usable for a retry.
func (ac *AuthController) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	var missing []string
	if req.Username == "" {
		missing = append(missing, "username")
	}
	if req.Email == "" {
		missing = append(missing, "email")
	}
	if req.Password == "" {
		missing = append(missing, "password")
	}
	if req.Phone == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return fail(c, apperr.Validation("Missing required fields", missing...))
	}

	if !utils.IsValidEmail(req.Email) {
		return fail(c, apperr.Validation("Invalid email format"))
	}
	if len(req.Password) < 6 {
		return fail(c, apperr.Validation("Password must be at least 6 characters long"))
	}
	if !utils.IsValidPhone(req.Phone) {
		return fail(c, apperr.Validation("Phone number must be 10 digits"))
	}

	ctx := c.Request().Context()
	if err := ac.users.FindOne(ctx, bson.M{"username": req.Username}).Err(); err == nil {
		return fail(c, apperr.Conflict("Username is already taken"))
	}
	if err := ac.users.FindOne(ctx, bson.M{"email": req.Email}).Err(); err == nil {
		return fail(c, apperr.Conflict("Email already registered"))
	}
	if err := ac.users.FindOne(ctx, bson.M{"phno": req.Phone}).Err(); err == nil {
		return fail(c, apperr.Conflict("Phone number already registered"))
	}

	if err := ac.gate.Confirm(ctx, req.Phone, req.OTP); err != nil {
		return fail(c, err)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return fail(c, apperr.Internal("Failed to hash password", err))
	}

	role := req.Role
	if role == "" {
		role = models.RoleClient
	}
	user := models.User{
		ID:             primitive.NewObjectID(),
		Username:       req.Username,
		Email:          req.Email,
		Password:       hashedPassword,
		Phone:          req.Phone,
		Role:           role,
		ProfilePicture: req.ProfilePicture,
		Cart:           []primitive.ObjectID{},
		IsActive:       true,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if _, err := ac.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fail(c, apperr.Conflict("Account already exists"))
		}
		return fail(c, apperr.Internal("Failed to create user", err))
	}

	ac.gate.Clear(ctx, req.Phone)

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		return fail(c, apperr.Internal("Failed to generate token", err))
	}

	user.Password = ""
	return c.JSON(http.StatusCreated, models.AuthResponse{Token: token, User: user})
}

func (ac *AuthController) Signin(c echo.Context) error {
	var req models.SigninRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	var user models.User
	err := ac.users.FindOne(c.Request().Context(), bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
	}
	if !user.IsActive {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Account is deactivated"})
	}
	if err := utils.CheckPassword(user.Password, req.Password); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		return fail(c, apperr.Internal("Failed to generate token", err))
	}

	user.Password = ""
	return c.JSON(http.StatusOK, models.AuthResponse{Token: token, User: user})
}

func (ac *AuthController) ListUsers(c echo.Context) error {
	userRole, _ := c.Get("user_role").(string)
	if userRole != models.RoleAdmin {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "Access denied"})
	}

	ctx := c.Request().Context()
	cursor, err := ac.users.Find(ctx, bson.M{})
	if err != nil {
		return fail(c, apperr.Internal("Failed to fetch users", err))
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			continue
		}
		user.Password = ""
		users = append(users, user)
	}
	return c.JSON(http.StatusOK, users)
}
