package wayfarer

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/wayfarer-app/wayfarer/core"
	"github.com/wayfarer-app/wayfarer/pkg/router"
)

type MessageHandler struct {
	messages core.MessageStore
	groups   core.GroupStore
}

func NewMessageHandler(messages core.MessageStore, groups core.GroupStore) *MessageHandler {
	return &MessageHandler{messages: messages, groups: groups}
}

type MessagePayload struct {
	Recipient string `json:"recipient" validate:"required_without=GroupID,excluded_with=GroupID"`
	GroupID   string `json:"group_id"`
	Content   string `json:"content" validate:"required"`
}

func (h *MessageHandler) SendMessageHandler(w http.ResponseWriter, r *http.Request) error {
	var payload MessagePayload
	if err := decodeJson(r, &payload); err != nil {
		return err
	}
	if err := validatePayload(payload); err != nil {
		return err
	}

	sender := core.SubjectFromRequest(r)

	if payload.GroupID != "" {
		member, err := h.groups.IsMember(r.Context(), payload.GroupID, sender)
		if err != nil {
			return fmt.Errorf("check group membership: %w", err)
		}
		if !member {
			return router.NewJsonError(http.StatusForbidden, "not a group member")
		}
	}

	message := core.Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Recipient: payload.Recipient,
		GroupID:   payload.GroupID,
		Content:   payload.Content,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.messages.CreateMessage(r.Context(), message); err != nil {
		return fmt.Errorf("create message: %w", err)
	}

	return writeJson(w, message)
}

func (h *MessageHandler) ListMessagesHandler(w http.ResponseWriter, r *http.Request) error {
	subject := core.SubjectFromRequest(r)

	var messages []core.Message
	switch {
	case r.URL.Query().Get("groupId") != "":
		groupID := r.URL.Query().Get("groupId")
		member, err := h.groups.IsMember(r.Context(), groupID, subject)
		if err != nil {
			return fmt.Errorf("check group membership: %w", err)
		}
		if !member {
			return router.NewJsonError(http.StatusForbidden, "not a group member")
		}
		messages, err = h.messages.MessagesByGroup(r.Context(), groupID)
		if err != nil {
			return fmt.Errorf("list group messages: %w", err)
		}
	case r.URL.Query().Get("with") != "":
		var err error
		messages, err = h.messages.MessagesBetween(r.Context(), subject, r.URL.Query().Get("with"))
		if err != nil {
			return fmt.Errorf("list direct messages: %w", err)
		}
	default:
		return router.NewJsonError(http.StatusBadRequest, "either groupId or with is required")
	}

	if messages == nil {
		messages = []core.Message{}
	}
	return writeJson(w, messages)
}

type GroupPayload struct {
	Name    string   `json:"name" validate:"required"`
	Members []string `json:"members"`
}

func (h *MessageHandler) CreateGroupHandler(w http.ResponseWriter, r *http.Request) error {
	var payload GroupPayload
	if err := decodeJson(r, &payload); err != nil {
		return err
	}
	if err := validatePayload(payload); err != nil {
		return err
	}

	group := core.Group{
		ID:        uuid.NewString(),
		Name:      payload.Name,
		CreatedBy: core.SubjectFromRequest(r),
		Members:   payload.Members,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.groups.CreateGroup(r.Context(), group); err != nil {
		return fmt.Errorf("create group: %w", err)
	}

	return writeJsonStatus(w, group, http.StatusCreated)
}

func (h *MessageHandler) ListGroupsHandler(w http.ResponseWriter, r *http.Request) error {
	groups, err := h.groups.GroupsByMember(r.Context(), core.SubjectFromRequest(r))
	if err != nil {
		return fmt.Errorf("list groups: %w", err)
	}
	if groups == nil {
		groups = []core.Group{}
	}
	return writeJson(w, groups)
}
