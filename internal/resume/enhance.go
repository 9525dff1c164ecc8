package resume

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/tarinagarwal/RRC2025/internal/ai"
)

const enhancementPrompt = `You are an expert resume analyst. Given parsed resume data, enhance it with:
1. Estimate years of experience from work history
2. Suggest target job roles based on skills and experience
3. Identify if candidate prefers remote work (from any mentions)
4. Extract preferred locations

Return a JSON object with these fields:
- years_of_experience: int
- target_roles: list of 3-5 job titles they'd be good for
- preferred_locations: list of locations mentioned or inferred
- is_remote_preferred: bool

Resume data:
%s`

// Enhancer derives the job-matching fields of a profile with one model call.
type Enhancer struct {
	generator ai.Generator
	logger    *zap.Logger
}

func NewEnhancer(generator ai.Generator, logger *zap.Logger) *Enhancer {
	return &Enhancer{generator: generator, logger: logger}
}

type enhancement struct {
	YearsOfExperience  int      `json:"years_of_experience"`
	TargetRoles        []string `json:"target_roles"`
	PreferredLocations []string `json:"preferred_locations"`
	IsRemotePreferred  bool     `json:"is_remote_preferred"`
}

// Enhance builds a profile from the raw parsed mapping and enriches it with
// derived search attributes. A failed model call still yields a usable base
// profile; the returned error then marks the degradation for the error log.
func (e *Enhancer) Enhance(ctx context.Context, raw map[string]any) (*Profile, error) {
	profile, err := BaseProfile(raw)
	if err != nil {
		return nil, fmt.Errorf("building base profile: %w", err)
	}

	payload, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return profile, ai.Unparseable("profile enhancement", err)
	}

	response, err := e.generator.GenerateContent(ctx, fmt.Sprintf(enhancementPrompt, payload))
	if err != nil {
		return profile, ai.Unreachable("profile enhancement", err)
	}

	var enh enhancement
	if err := json.Unmarshal([]byte(ai.ExtractJSONObject(response)), &enh); err != nil {
		return profile, ai.Unparseable("profile enhancement", err)
	}

	profile.YearsOfExperience = enh.YearsOfExperience
	if profile.YearsOfExperience < 0 {
		profile.YearsOfExperience = 0
	}
	profile.TargetRoles = enh.TargetRoles
	profile.PreferredLocations = enh.PreferredLocations
	profile.IsRemotePreferred = enh.IsRemotePreferred

	e.logger.Debug("profile enhanced",
		zap.Int("years_of_experience", profile.YearsOfExperience),
		zap.Strings("target_roles", profile.TargetRoles),
	)

	return profile, nil
}

type rawSocials struct {
	LinkedIn  string `mapstructure:"linkedin"`
	GitHub    string `mapstructure:"github"`
	Portfolio string `mapstructure:"portfolio"`
}

type rawContact struct {
	Name    string     `mapstructure:"name"`
	Phone   string     `mapstructure:"phone"`
	Email   string     `mapstructure:"email"`
	Address string     `mapstructure:"address"`
	Socials rawSocials `mapstructure:"socials"`
}

type rawResume struct {
	Contact        rawContact       `mapstructure:"contact"`
	Summary        string           `mapstructure:"summary"`
	Education      []Education      `mapstructure:"education"`
	Skills         Skills           `mapstructure:"skills"`
	Experience     []Experience     `mapstructure:"experience"`
	Projects       []Project        `mapstructure:"projects"`
	Certifications []map[string]any `mapstructure:"certifications"`
}

// BaseProfile decodes the parser's raw nested mapping into a profile with no
// derived fields set.
func BaseProfile(raw map[string]any) (*Profile, error) {
	var decoded rawResume
	cfg := &mapstructure.DecoderConfig{
		Result:           &decoded,
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode raw resume: %w", err)
	}

	return &Profile{
		Contact: Contact{
			Name:      decoded.Contact.Name,
			Phone:     decoded.Contact.Phone,
			Email:     decoded.Contact.Email,
			Address:   decoded.Contact.Address,
			LinkedIn:  decoded.Contact.Socials.LinkedIn,
			GitHub:    decoded.Contact.Socials.GitHub,
			Portfolio: decoded.Contact.Socials.Portfolio,
		},
		Summary:        decoded.Summary,
		Education:      decoded.Education,
		Skills:         decoded.Skills,
		Experience:     decoded.Experience,
		Projects:       decoded.Projects,
		Certifications: decoded.Certifications,
	}, nil
}
