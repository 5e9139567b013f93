package rpc

import "time"

type Empty struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type Exam struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	CategoryID      string    `json:"category_id,omitempty"`
	Price           int64     `json:"price"`
	ExamDate        string    `json:"exam_date"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	Venue           string    `json:"venue"`
	DurationMinutes int       `json:"duration_minutes"`
	Instructions    []string  `json:"instructions,omitempty"`
	StartsInSeconds int64     `json:"starts_in_seconds"`
}

type ListExamsRequest struct {
	Today bool `json:"today"`
}

type ListExamsResponse struct {
	Exams []Exam `json:"exams"`
}

// Draft is the registration form.
type Draft struct {
	Identifier  string `json:"identifier"`
	Name        string `json:"name"`
	FatherName  string `json:"father_name"`
	DateOfBirth string `json:"date_of_birth"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	PhotoKey    string `json:"photo_key,omitempty"`
}

type Session struct {
	ID            string `json:"id"`
	Flow          string `json:"flow"`
	State         string `json:"state"`
	CandidateID   string `json:"candidate_id,omitempty"`
	ItemID        string `json:"item_id"`
	ItemKind      string `json:"item_kind"`
	ItemTitle     string `json:"item_title"`
	Price         int64  `json:"price"`
	Draft         Draft  `json:"draft"`
	OrderID       string `json:"order_id,omitempty"`
	BypassReason  string `json:"bypass_reason,omitempty"`
	ApplicationID string `json:"application_id,omitempty"`
	PurchaseID    string `json:"purchase_id,omitempty"`
	DocumentID    string `json:"document_id,omitempty"`
}

type CheckIdentityRequest struct {
	Flow       string `json:"flow"`
	ItemID     string `json:"item_id"`
	Identifier string `json:"identifier"`
}

type SessionRequest struct {
	SessionID string `json:"session_id"`
}

type SessionResponse struct {
	Session Session `json:"session"`
}

type SubmitFormRequest struct {
	SessionID string `json:"session_id"`
	Draft     Draft  `json:"draft"`
}

type ConfirmPurchaseRequest struct {
	SessionID   string `json:"session_id"`
	SuperUserID string `json:"super_user_id,omitempty"`
}

// ConfirmPurchaseResponse either reports a bypass or carries what the
// hosted checkout needs.
type ConfirmPurchaseResponse struct {
	Session      Session `json:"session"`
	Bypassed     bool    `json:"bypassed"`
	BypassReason string  `json:"bypass_reason,omitempty"`
	Notice       string  `json:"notice,omitempty"`
	OrderID      string  `json:"order_id,omitempty"`
	Amount       int64   `json:"amount"`
	Currency     string  `json:"currency"`
	KeyID        string  `json:"key_id,omitempty"`
}

type CompletePaymentRequest struct {
	SessionID string `json:"session_id"`
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

type DocumentResponse struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Filename string `json:"filename"`
	Content  []byte `json:"content"`
	URL      string `json:"url,omitempty"`
}

type PresignPhotoUploadRequest struct {
	SessionID   string `json:"session_id"`
	ContentType string `json:"content_type"`
}

type PresignPhotoUploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type CatalogItem struct {
	ID           string `json:"id"`
	Kind         string `json:"kind"`
	Title        string `json:"title"`
	Price        int64  `json:"price"`
	DurationDays int    `json:"duration_days"`
}

type ListCatalogRequest struct {
	Kind string `json:"kind,omitempty"`
}

type ListCatalogResponse struct {
	Items []CatalogItem `json:"items"`
}

type Purchase struct {
	ID          string    `json:"id"`
	ItemID      string    `json:"item_id"`
	ItemKind    string    `json:"item_kind"`
	ItemTitle   string    `json:"item_title"`
	Amount      int64     `json:"amount"`
	PurchasedAt time.Time `json:"purchased_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	Active      bool      `json:"active"`
}

type ListPurchasesRequest struct {
	Identifier string `json:"identifier"`
}

type ListPurchasesResponse struct {
	Purchases []Purchase `json:"purchases"`
}

// ProgressRequest carries answers keyed by question number.
type ProgressRequest struct {
	ExamID      string      `json:"exam_id"`
	CandidateID string      `json:"candidate_id"`
	Answers     map[int]int `json:"answers,omitempty"`
	Skipped     []int       `json:"skipped,omitempty"`
}

type ProgressResponse struct {
	Answers map[int]int `json:"answers"`
	Skipped []int       `json:"skipped"`
}

type SubmitExamResponse struct {
	Total    int `json:"total"`
	Answered int `json:"answered"`
	Correct  int `json:"correct"`
	Skipped  int `json:"skipped"`
}

type AdminLoginRequest struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}

type AdminLoginResponse struct {
	AccessToken string `json:"access_token"`
}

type Application struct {
	ID            string    `json:"id"`
	ApplicationNo string    `json:"application_no"`
	CandidateID   string    `json:"candidate_id"`
	CandidateName string    `json:"candidate_name,omitempty"`
	ExamID        string    `json:"exam_id"`
	ExamCode      string    `json:"exam_code,omitempty"`
	ExamName      string    `json:"exam_name,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type ListApplicationsRequest struct {
	Search string `json:"search,omitempty"`
	Status string `json:"status,omitempty"`
}

type ListApplicationsResponse struct {
	Applications []Application `json:"applications"`
}

type SetApplicationStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ApplicationResponse struct {
	Application Application `json:"application"`
}

type IDRequest struct {
	ID string `json:"id"`
}

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type ListCategoriesResponse struct {
	Categories []Category `json:"categories"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type RenameCategoryRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CategoryResponse struct {
	Category Category `json:"category"`
}

type RosterRequest struct {
	ExamID string `json:"exam_id"`
}

type RosterEntry struct {
	CandidateID   string `json:"candidate_id"`
	CandidateName string `json:"candidate_name"`
	ApplicationNo string `json:"application_no"`
	Status        string `json:"status"`
}

type RosterResponse struct {
	Entries []RosterEntry `json:"entries"`
}

type AttendanceMark struct {
	CandidateID string `json:"candidate_id"`
	Status      string `json:"status"`
}

type SaveAttendanceRequest struct {
	ExamID string           `json:"exam_id"`
	Marks  []AttendanceMark `json:"marks"`
}

type SaveAttendanceResponse struct {
	Marks []AttendanceMark `json:"marks"`
}

type Question struct {
	Text     string   `json:"text"`
	ImageURL string   `json:"image_url,omitempty"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
}

type UpsertQuestionsRequest struct {
	ExamID    string     `json:"exam_id"`
	Questions []Question `json:"questions"`
}

type QuestionPaperRequest struct {
	ExamID      string `json:"exam_id"`
	ShowAnswers bool   `json:"show_answers"`
}
