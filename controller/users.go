package controller

import (
	"strings"

	"github.com/hridoy-islam/attendanceadmin/middleware"
	"github.com/hridoy-islam/attendanceadmin/model"
	"github.com/hridoy-islam/attendanceadmin/model/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var validate = validator.New()

func hashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

type CreateUserRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	Role            string `json:"role"`
}

// CreateUser registers a new dashboard user.
func CreateUser(c *fiber.Ctx) error {
	req := new(CreateUserRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if req.Password != req.ConfirmPassword {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Passwords do not match"})
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to hash password", "error": err.Error()})
	}

	role := req.Role
	if role == "" {
		role = "user"
	}

	user := model.User{
		Name:     req.Name,
		Email:    strings.ToLower(req.Email),
		Password: hashedPassword,
		Role:     role,
	}

	err = middleware.DBConn.Transaction(func(tx *gorm.DB) error {
		// Check if user with the same email already exists
		existingUser := model.User{}
		if err := tx.Where("email = ?", user.Email).First(&existingUser).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "User with this email already exists")
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		return tx.Create(&user).Error
	})

	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Transaction failed", "error": err.Error()})
	}

	user.Password = ""
	return c.JSON(response.ResponseModel{
		RetCode: "200",
		Message: "User successfully added.",
		Data:    user,
	})
}

// GetAllUsers lists users with pagination and search.
// GET /users?role=user&page=1&limit=10&searchTerm=foo
func GetAllUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 10)
	if limit < 1 {
		limit = 10
	}
	searchTerm := c.Query("searchTerm")
	role := c.Query("role")

	query := middleware.DBConn.Model(&model.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if searchTerm != "" {
		pattern := "%" + searchTerm + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to count users",
			"error":   err.Error(),
		})
	}

	var users []model.User
	if err := query.
		Omit("password").
		Order("id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to retrieve users",
			"error":   err.Error(),
		})
	}

	totalPage := int((total + int64(limit) - 1) / int64(limit))

	return c.JSON(response.ResponseModel{
		RetCode: "200",
		Message: "Users retrieved successfully.",
		Data: fiber.Map{
			"result": users,
			"meta": fiber.Map{
				"page":      page,
				"limit":     limit,
				"total":     total,
				"totalPage": totalPage,
			},
		},
	})
}

// GetSingleUser returns one user's profile.
func GetSingleUser(c *fiber.Ctx) error {
	id := c.Params("id")
	var user model.User
	if err := middleware.DBConn.Omit("password").First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to retrieve user",
			"error":   err.Error()})
	}

	return c.JSON(response.ResponseModel{
		RetCode: "200",
		Message: "User retrieved successfully.",
		Data:    user,
	})
}

type UpdateUserRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=6"`
	Role      *string `json:"role"`
	IsDeleted *bool   `json:"is_deleted"`
	FCMToken  *string `json:"fcm_token"`
}

// UpdateUser applies a partial update to a user, including the soft-delete
// toggle used by the dashboard switch.
func UpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")

	req := new(UpdateUserRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = strings.ToLower(*req.Email)
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.IsDeleted != nil {
		updates["is_deleted"] = *req.IsDeleted
	}
	if req.FCMToken != nil {
		updates["fcm_token"] = *req.FCMToken
	}
	if req.Password != nil {
		hashedPassword, err := hashPassword(*req.Password)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to hash password",
				"error":   err.Error()})
		}
		updates["password"] = hashedPassword
	}

	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Nothing to update"})
	}

	result := middleware.DBConn.Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update user",
			"error":   result.Error.Error()})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}

	return c.JSON(response.ResponseModel{
		RetCode: "200",
		Message: "User successfully updated.",
	})
}
