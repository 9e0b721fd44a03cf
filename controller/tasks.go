package controller

import (
	"log"
	"time"

	"github.com/hridoy-islam/attendanceadmin/middleware"
	"github.com/hridoy-islam/attendanceadmin/model"
	"github.com/hridoy-islam/attendanceadmin/model/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateTaskRequest struct {
	TaskName   string     `json:"task_name" validate:"required"`
	AssignedID *uint      `json:"assigned_id"`
	DueDate    *time.Time `json:"due_date"`
}

// taskWithTags wraps a task with its derived display tags so clients never
// re-implement the overdue/important/completed rules.
type taskWithTags struct {
	model.Task
	Tags model.TaskTags `json:"tags"`
}

func tagTasks(tasks []model.Task, now time.Time) []taskWithTags {
	out := make([]taskWithTags, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskWithTags{Task: t, Tags: model.ClassifyTask(t, now)})
	}
	return out
}

// CreateTask adds a task authored by the logged-in user. Assigning it to
// another user fires a best-effort push notification.
func CreateTask(c *fiber.Ctx) error {
	authorID, ok := c.Locals("user_id").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	req := new(CreateTaskRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	task := model.Task{
		TaskName:   req.TaskName,
		AuthorID:   authorID,
		AssignedID: req.AssignedID,
		DueDate:    req.DueDate,
		Status:     model.TaskStatusPending,
	}

	if err := middleware.DBConn.Create(&task).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create task",
			"error":   err.Error(),
		})
	}

	if req.AssignedID != nil {
		notifyAssignee(*req.AssignedID, task.TaskName)
	}

	if err := middleware.DBConn.Preload("Author").Preload("Assigned").First(&task, task.ID).Error; err != nil {
		log.Println("Failed to reload created task:", err)
	}

	return c.JSON(response.ResponseModel{
		RetCode: "200",
		Message: "Task successfully created.",
		Data:    taskWithTags{Task: task, Tags: model.ClassifyTask(task, time.Now().UTC())},
	})
}

// notifyAssignee pushes a notification to the assignee's device if one is
// registered. Failures are logged, never surfaced.
func notifyAssignee(assigneeID uint, taskName string) {
	var assignee model.User
	if err := middleware.DBConn.First(&assignee, assigneeID).Error; err != nil {
		log.Println("Assignee lookup failed:", err)
		return
	}
	if assignee.FCMToken == "" {
		return
	}
	if err := SendPushNotification(assignee.FCMToken, "New Task Assigned", taskName); err != nil {
		log.Println("Push notification failed:", err)
	}
}

type UpdateTaskRequest struct {
	TaskName  *string    `json:"task_name"`
	DueDate   *time.Time `json:"due_date"`
	Important *bool      `json:"important"`
	Status    *string    `json:"status" validate:"omitempty,oneof=pending completed"`
}

// UpdateTask applies a partial update. Renaming, rescheduling and completion
// are author-only (model.CanEditTask); toggling the important flag is open to
// any logged-in user, matching the dashboard star button.
func UpdateTask(c *fiber.Ctx) error {
	actorID, ok := c.Locals("user_id").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	id := c.Params("id")

	req := new(UpdateTaskRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var task model.Task
	if err := middleware.DBConn.First(&task, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Task not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to retrieve task",
			"error":   err.Error(),
		})
	}

	restricted := req.TaskName != nil || req.DueDate != nil || req.Status != nil
	if restricted && !model.CanEditTask(task, actorID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You do not have permission for this action",
		})
	}

	updates := map[string]interface{}{}
	if req.TaskName != nil {
		updates["task_name"] = *req.TaskName
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}
	if req.Important != nil {
		updates["important"] = *req.Important
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Nothing to update"})
	}

	if err := middleware.DBConn.Model(&task).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update task",
			"error":   err.Error(),
		})
	}

	return c.JSON(response.ResponseModel{
		RetCode: "200",
		Message: "Task successfully updated.",
		Data:    taskWithTags{Task: task, Tags: model.ClassifyTask(task, time.Now().UTC())},
	})
}

// GetDueTasks lists a user's tasks with pending ones first, then by due date.
func GetDueTasks(c *fiber.Ctx) error {
	userID := c.Params("id")

	var tasks []model.Task
	if err := middleware.DBConn.
		Preload("Author").
		Preload("Assigned").
		Where("author_id = ? OR assigned_id = ?", userID, userID).
		Order("status DESC").
		Order("due_date ASC").
		Find(&tasks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to retrieve tasks",
			"error":   err.Error(),
		})
	}

	return c.JSON(response.ResponseModel{
		RetCode: "200",
		Message: "Tasks retrieved successfully.",
		Data:    tagTasks(tasks, time.Now().UTC()),
	})
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// CreateComment adds a comment to a task.
func CreateComment(c *fiber.Ctx) error {
	authorID, ok := c.Locals("user_id").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	id := c.Params("id")

	req := new(CreateCommentRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var task model.Task
	if err := middleware.DBConn.First(&task, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Task not found"})
	}

	comment := model.Comment{
		TaskID:   task.ID,
		AuthorID: authorID,
		Content:  req.Content,
	}
	if err := middleware.DBConn.Create(&comment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create comment",
			"error":   err.Error(),
		})
	}

	return c.JSON(response.ResponseModel{
		RetCode: "200",
		Message: "Comment successfully added.",
		Data:    comment,
	})
}

// GetTaskComments lists a task's comments oldest first.
func GetTaskComments(c *fiber.Ctx) error {
	id := c.Params("id")

	var comments []model.Comment
	if err := middleware.DBConn.
		Preload("Author").
		Where("task_id = ?", id).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to retrieve comments",
			"error":   err.Error(),
		})
	}

	return c.JSON(response.ResponseModel{
		RetCode: "200",
		Message: "Comments retrieved successfully.",
		Data:    comments,
	})
}
