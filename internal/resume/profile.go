// Package resume holds the normalized resume representation and the stages
// that produce it: the external parser collaborator and the LLM-backed
// profile enhancement.
package resume

// Contact carries the candidate's contact block from the parsed resume.
type Contact struct {
	Name      string `json:"name" mapstructure:"name"`
	Phone     string `json:"phone" mapstructure:"phone"`
	Email     string `json:"email" mapstructure:"email"`
	Address   string `json:"address" mapstructure:"address"`
	LinkedIn  string `json:"linkedin" mapstructure:"linkedin"`
	GitHub    string `json:"github" mapstructure:"github"`
	Portfolio string `json:"portfolio" mapstructure:"portfolio"`
}

type Education struct {
	Degree      string `json:"degree" mapstructure:"degree"`
	Institution string `json:"institution" mapstructure:"institution"`
	Location    string `json:"location" mapstructure:"location"`
	StartYear   string `json:"start_year" mapstructure:"start_year"`
	EndYear     string `json:"end_year" mapstructure:"end_year"`
	Grade       string `json:"grade" mapstructure:"grade"`
}

type Experience struct {
	Role        string `json:"role" mapstructure:"role"`
	Company     string `json:"company" mapstructure:"company"`
	Location    string `json:"location" mapstructure:"location"`
	StartDate   string `json:"start_date" mapstructure:"start_date"`
	EndDate     string `json:"end_date" mapstructure:"end_date"`
	Description string `json:"description" mapstructure:"description"`
}

type Project struct {
	Title        string   `json:"title" mapstructure:"title"`
	Description  string   `json:"description" mapstructure:"description"`
	Technologies []string `json:"technologies" mapstructure:"technologies"`
}

// Skills groups the categorized skill lists extracted from the resume.
type Skills struct {
	Technical []string `json:"technical" mapstructure:"technical"`
	Soft      []string `json:"soft" mapstructure:"soft"`
	Tools     []string `json:"tools" mapstructure:"tools"`
	Languages []string `json:"languages" mapstructure:"languages"`
}

// Profile is the structured resume profile threaded through the pipeline.
// It is created once by the parsing stage, enriched by the enhancement
// stage, and immutable afterwards.
type Profile struct {
	Contact        Contact          `json:"contact"`
	Summary        string           `json:"summary"`
	Education      []Education      `json:"education"`
	Skills         Skills           `json:"skills"`
	Experience     []Experience     `json:"experience"`
	Projects       []Project        `json:"projects"`
	Certifications []map[string]any `json:"certifications"`

	// Derived fields for job matching, filled in by the enhancement stage.
	YearsOfExperience  int      `json:"years_of_experience"`
	TargetRoles        []string `json:"target_roles"`
	PreferredLocations []string `json:"preferred_locations"`
	IsRemotePreferred  bool     `json:"is_remote_preferred"`
}

// CandidateSkills returns the union of technical skills, tools and
// programming languages, in that order. This is the skill set matched
// against job requirements.
func (p *Profile) CandidateSkills() []string {
	skills := make([]string, 0, len(p.Skills.Technical)+len(p.Skills.Tools)+len(p.Skills.Languages))
	skills = append(skills, p.Skills.Technical...)
	skills = append(skills, p.Skills.Tools...)
	skills = append(skills, p.Skills.Languages...)
	return skills
}

// FirstDegree returns the degree of the first education record, or a
// placeholder when the resume carries none.
func (p *Profile) FirstDegree() string {
	if len(p.Education) == 0 {
		return "Not specified"
	}
	return p.Education[0].Degree
}
