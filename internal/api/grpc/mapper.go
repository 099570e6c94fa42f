package grpc

import (
	"fmt"
	"strconv"
	"time"

	"eventreg-request-service/internal/domain"

	"google.golang.org/protobuf/types/known/structpb"
)

// Ids travel as decimal strings because struct numbers are float64.

func MapCountRequestsToProto(eventID int64, status domain.RequestStatus) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"eventId": structpb.NewStringValue(strconv.FormatInt(eventID, 10)),
		"status":  structpb.NewStringValue(string(status)),
	}}
}

func MapProtoToCountRequests(s *structpb.Struct) (int64, domain.RequestStatus, error) {
	fields := s.GetFields()
	eventID, err := parseID(fields["eventId"], "eventId")
	if err != nil {
		return 0, "", err
	}
	status := domain.RequestStatusConfirmed
	if raw := fields["status"].GetStringValue(); raw != "" {
		status, err = domain.ParseRequestStatus(raw)
		if err != nil {
			return 0, "", err
		}
	}
	return eventID, status, nil
}

func MapDomainEventToProto(e *domain.Event) *structpb.Struct {
	fields := map[string]*structpb.Value{
		"id":                structpb.NewStringValue(strconv.FormatInt(e.ID, 10)),
		"initiatorId":       structpb.NewStringValue(strconv.FormatInt(e.InitiatorID, 10)),
		"participantLimit":  structpb.NewNumberValue(float64(e.ParticipantLimit)),
		"requestModeration": structpb.NewBoolValue(e.RequestModeration),
		"state":             structpb.NewStringValue(string(e.State)),
	}
	if e.PublishedOn != nil {
		fields["publishedOn"] = structpb.NewStringValue(e.PublishedOn.UTC().Format(time.RFC3339))
	}
	return &structpb.Struct{Fields: fields}
}

func MapProtoToDomainEvent(s *structpb.Struct) (*domain.Event, error) {
	fields := s.GetFields()
	id, err := parseID(fields["id"], "id")
	if err != nil {
		return nil, err
	}
	initiatorID, err := parseID(fields["initiatorId"], "initiatorId")
	if err != nil {
		return nil, err
	}
	e := &domain.Event{
		ID:                id,
		InitiatorID:       initiatorID,
		ParticipantLimit:  int32(fields["participantLimit"].GetNumberValue()),
		RequestModeration: fields["requestModeration"].GetBoolValue(),
		State:             domain.EventState(fields["state"].GetStringValue()),
	}
	if raw := fields["publishedOn"].GetStringValue(); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, domain.NewInvalidArgument(fmt.Sprintf("publishedOn: %v", err))
		}
		e.PublishedOn = &t
	}
	return e, nil
}

func MapDomainUserToProto(u *domain.User) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":    structpb.NewStringValue(strconv.FormatInt(u.ID, 10)),
		"name":  structpb.NewStringValue(u.Name),
		"email": structpb.NewStringValue(u.Email),
	}}
}

func MapProtoToDomainUser(s *structpb.Struct) (*domain.User, error) {
	fields := s.GetFields()
	id, err := parseID(fields["id"], "id")
	if err != nil {
		return nil, err
	}
	return &domain.User{
		ID:    id,
		Name:  fields["name"].GetStringValue(),
		Email: fields["email"].GetStringValue(),
	}, nil
}

func parseID(v *structpb.Value, field string) (int64, error) {
	raw := v.GetStringValue()
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.NewInvalidArgument(fmt.Sprintf("%s must be an integer id, got %q", field, raw))
	}
	return id, nil
}
