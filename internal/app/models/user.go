package models

// Role identifies what kind of account a user holds. The platform only
// issues the three values below; anything else coming off the wire is kept
// verbatim and handled by the defensive defaults in the view selectors.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

// Known reports whether r is one of the roles the platform issues.
func (r Role) Known() bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleAdmin:
		return true
	}
	return false
}

// UserRecord is the denormalized account snapshot returned by the campus API
// on login and cached alongside the bearer token. The session core only
// touches ID, Role and IsVerified; the rest is carried for the views.
type UserRecord struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	CollegeID   string `json:"collegeId"`
	CollegeName string `json:"collegeName,omitempty"`
	IsVerified  bool   `json:"isVerified"`
	IsBlocked   bool   `json:"isBlocked,omitempty"`

	// Role-conditional profile fields, opaque to the session core.
	ContactInfo       string   `json:"contactInfo,omitempty"`
	Year              int      `json:"year,omitempty"`
	Skills            []string `json:"skills,omitempty"`
	Interests         string   `json:"interests,omitempty"`
	Department        string   `json:"department,omitempty"`
	ResearchInterests string   `json:"researchInterests,omitempty"`
	Publications      []string `json:"publications,omitempty"`
	AreasOfExpertise  []string `json:"areasOfExpertise,omitempty"`
	LinkedIn          string   `json:"linkedin,omitempty"`
	GitHub            string   `json:"github,omitempty"`
	Avatar            string   `json:"avatar,omitempty"`
}

// RegisterRequest carries the profile fields a new account is created with.
// Password travels alongside, never inside the cached user snapshot.
type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	CollegeID   string `json:"collegeId"`
	Department  string `json:"department,omitempty"`
	Year        int    `json:"year,omitempty"`
	ContactInfo string `json:"contactInfo,omitempty"`
	Password    string `json:"password"`
}

// Project is a faculty-posted research project on the projects board.
type Project struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	FacultyID        string   `json:"facultyId"`
	FacultyName      string   `json:"facultyName"`
	RequiredSkills   []string `json:"requiredSkills"`
	ExpectedOutcomes string   `json:"expectedOutcomes"`
	Duration         string   `json:"duration"`
	Status           string   `json:"status"`
	Department       string   `json:"department"`
}

// StudentProject is a personal portfolio project owned by a student.
type StudentProject struct {
	ID          string `json:"_id"`
	StudentID   string `json:"studentId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	GitHubLink  string `json:"githubLink,omitempty"`
	DemoLink    string `json:"demoLink,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Publication is a faculty publication reference.
type Publication struct {
	ID        string `json:"id"`
	FacultyID string `json:"facultyId"`
	Title     string `json:"title"`
	Year      int    `json:"year"`
	FileURL   string `json:"fileUrl,omitempty"`
}
