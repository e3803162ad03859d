package handler

import "github.com/ValiCoder/courseboard/internal/core/domain"

type createCourseRequest struct {
	Name    string `json:"name"     validate:"required"`
	Topic   string `json:"topic"`
	OwnerID string `json:"owner_id"`
}

type updateCourseRequest struct {
	Name  string `json:"name"`
	Topic string `json:"topic"`
}

type courseResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Topic   string `json:"topic,omitempty"`
	OwnerID string `json:"owner_id"`
}

func toCourseResponse(course *domain.Course) courseResponse {
	return courseResponse{
		ID:      course.ID,
		Name:    course.Name,
		Topic:   course.Topic,
		OwnerID: course.OwnerID,
	}
}
