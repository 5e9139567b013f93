package grpc

import (
	"github.com/dmitrijs2005/examdesk/internal/rpc"
	"github.com/dmitrijs2005/examdesk/internal/server/models"
	"github.com/dmitrijs2005/examdesk/internal/server/services"
	"github.com/dmitrijs2005/examdesk/internal/wizard"
)

const dateLayout = "2006-01-02"

func toSession(s *wizard.Session) rpc.Session {
	return rpc.Session{
		ID:            s.ID,
		Flow:          string(s.Flow),
		State:         string(s.State),
		CandidateID:   s.CandidateID,
		ItemID:        s.Item.ID,
		ItemKind:      s.Item.Kind,
		ItemTitle:     s.Item.Title,
		Price:         s.Item.Price,
		Draft:         rpc.Draft(s.Draft),
		OrderID:       s.OrderID,
		BypassReason:  s.BypassReason,
		ApplicationID: s.ApplicationID,
		PurchaseID:    s.PurchaseID,
		DocumentID:    s.DocumentID,
	}
}

func toExams(list []services.ExamView) []rpc.Exam {
	out := make([]rpc.Exam, 0, len(list))
	for _, v := range list {
		out = append(out, rpc.Exam{
			ID:              v.ID,
			Code:            v.Code,
			Name:            v.Name,
			CategoryID:      v.CategoryID,
			Price:           v.Price,
			ExamDate:        v.ExamDate.Format(dateLayout),
			StartAt:         v.StartAt,
			EndAt:           v.EndAt,
			Venue:           v.Venue,
			DurationMinutes: v.DurationMinutes,
			Instructions:    v.Instructions,
			StartsInSeconds: int64(v.StartsIn.Seconds()),
		})
	}
	return out
}

func toDocument(d *services.IssuedDocument) *rpc.DocumentResponse {
	return &rpc.DocumentResponse{
		ID:       d.ID,
		Kind:     d.Kind,
		Filename: d.Filename,
		Content:  d.Content,
		URL:      d.URL,
	}
}

func toApplication(a *models.Application) rpc.Application {
	return rpc.Application{
		ID:            a.ID,
		ApplicationNo: a.ApplicationNo,
		CandidateID:   a.CandidateID,
		ExamID:        a.ExamID,
		Status:        string(a.Status),
		CreatedAt:     a.CreatedAt,
	}
}

func toCategory(c *models.Category) rpc.Category {
	return rpc.Category{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}

func toMarks(marks []models.AttendanceMark) []rpc.AttendanceMark {
	out := make([]rpc.AttendanceMark, 0, len(marks))
	for _, m := range marks {
		out = append(out, rpc.AttendanceMark{CandidateID: m.CandidateID, Status: string(m.Status)})
	}
	return out
}

// notice is the line shown to the candidate on the confirmation step.
func notice(c *services.Confirmation) string {
	if !c.Bypassed {
		return "Pay " + pdfAmount(c.Amount)
	}
	if c.BypassReason == models.BypassSuperUser {
		return "SUPER USER"
	}
	if c.Session.Flow == wizard.FlowExamRegistration {
		return "FREE EXAM"
	}
	return "FREE"
}
