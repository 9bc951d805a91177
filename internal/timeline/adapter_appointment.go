package timeline

import (
	"context"
	"strings"
	"time"

	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/model"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/store"
)

// appointmentAdapter projects calendar appointments. Access control is
// adapter-local: the requestor must be organizer or attendee, enforced by
// the participant restriction in the store filter.
type appointmentAdapter struct {
	appts store.Appointments
}

func (a *appointmentAdapter) source() string { return "appointments" }

func (a *appointmentAdapter) eventTypes() []model.EventType {
	return []model.EventType{model.EventAppointment}
}

func (a *appointmentAdapter) fetch(ctx context.Context, f fetchFilter) ([]model.TimelineEvent, error) {
	rows, err := a.appts.Find(ctx, store.AppointmentFilter{
		TenantID:      f.scope.TenantID,
		EntityID:      f.entityID,
		ParticipantID: f.scope.RequestorID,
		From:          f.from,
		To:            f.to,
	})
	if err != nil {
		return nil, err
	}
	out := make([]model.TimelineEvent, 0, len(rows))
	for _, ap := range rows {
		out = append(out, projectAppointment(ap, f.now))
	}
	return out, nil
}

// projectAppointment uses startTime as the authoritative timestamp. An
// appointment is overdue when it ended in the past but still reads
// "scheduled", i.e. nobody closed it out.
func projectAppointment(ap *model.Appointment, now time.Time) model.TimelineEvent {
	overdue := ap.EndTime != nil && ap.EndTime.Before(now) && strings.EqualFold(ap.Status, "scheduled")

	return model.TimelineEvent{
		ID:          eventID("appointment", ap.AppointmentID),
		Type:        model.EventAppointment,
		Title:       ap.Title,
		Description: ap.Description,
		Timestamp:   ap.StartTime,
		EntityType:  "appointment",
		EntityID:    ap.AppointmentID,
		IsOverdue:   overdue,
		Actor:       &model.Actor{ID: ap.OrganizerID, Name: ""},
		Detail: &model.AppointmentDetail{
			Status:     ap.Status,
			StartTime:  ap.StartTime,
			EndTime:    ap.EndTime,
			Location:   ap.Location,
			MeetingURL: ap.MeetingURL,
		},
	}
}
