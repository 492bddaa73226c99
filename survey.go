package main

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

var ErrUnknownCode = errors.New("unknown answer code")

type labelTable map[string]string

func (t labelTable) label(code string) (string, error) {
	value, ok := t[code]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCode, code)
	}
	return value, nil
}

// surveyFields names the question codes of the Qualtrics export.
type surveyFields struct {
	Finished            string `yaml:"finished"`
	DistributionChannel string `yaml:"distribution_channel"`
	Major               string `yaml:"major"`
	UsedResource        string `yaml:"used_resource"`
	ServiceType         string `yaml:"service_type"`
	Effect              string `yaml:"effect"`
	GradeImpact         string `yaml:"grade_impact"`
	QualityOfLife       string `yaml:"quality_of_life"`
	TimeManagement      string `yaml:"time_management"`
	Recommended         string `yaml:"recommended"`
	InitialReason       string `yaml:"initial_reason"`
	ReasonNotUsed       string `yaml:"reason_not_used"`
	TutorStatus         string `yaml:"tutor_status"`
	// Understanding is a format string taking the service code.
	Understanding string `yaml:"understanding"`
	Presentation  string `yaml:"presentation"`
}

type surveyLabels struct {
	Services      labelTable `yaml:"services"`
	Effects       labelTable `yaml:"effects"`
	Reasons       labelTable `yaml:"reasons"`
	ReasonsNotUse labelTable `yaml:"reasons_not_used"`
}

type surveyConfig struct {
	Fields surveyFields `yaml:"fields"`
	Labels surveyLabels `yaml:"labels"`

	FinishedValue string `yaml:"finished_value"`
	Channel       string `yaml:"channel"`
	Yes           string `yaml:"yes"`
	No            string `yaml:"no"`
	// StudentReferral is the initial-reason code for a recommendation from
	// another student.
	StudentReferral string `yaml:"student_referral"`

	TutoringCodes      []string `yaml:"tutoring_codes"`
	ConsultationCode   string   `yaml:"consultation_code"`
	UnderstandingCodes []string `yaml:"understanding_codes"`
}

func defaultSurvey() surveyConfig {
	return surveyConfig{
		Fields: surveyFields{
			Finished:            "Finished",
			DistributionChannel: "DistributionChannel",
			Major:               "Q4",
			UsedResource:        "Q17",
			ServiceType:         "Q23",
			Effect:              "Q19",
			GradeImpact:         "Q25_1",
			QualityOfLife:       "Q26",
			TimeManagement:      "Q28",
			Recommended:         "Q14",
			InitialReason:       "Q13",
			ReasonNotUsed:       "Q20",
			TutorStatus:         "Q15",
			Understanding:       "Q12#1_%s",
			Presentation:        "Q29",
		},
		Labels: surveyLabels{
			Services: labelTable{
				"1": "Group Tutoring",
				"2": "Drop-in Tutoring",
				"3": "Math Study Groups",
				"4": "Other Tutoring",
				"5": "Learning Consultations",
				"6": "SAGE",
				"":  "Other",
			},
			Effects: labelTable{
				"1": "Greatly",
				"2": "Moderately",
				"3": "No significant improvement",
				"4": "Negatively",
			},
			Reasons: labelTable{
				"1": "Recommendation from student",
				"2": "Recommendation from faculty",
				"3": "Advertising by the ARC",
				"4": "Other",
			},
			ReasonsNotUse: labelTable{
				"1": "Have not had time",
				"2": "Do not find them necessary",
				"3": "Do not offer resources for my coursework",
				"4": "Not aware of resources",
				"5": "Negative reputation of ARC",
				"6": "Other",
			},
		},
		FinishedValue:      "1",
		Channel:            "anonymous",
		Yes:                "1",
		No:                 "2",
		StudentReferral:    "1",
		TutoringCodes:      []string{"1", "2", "3", "4", "6"},
		ConsultationCode:   "5",
		UnderstandingCodes: []string{"1", "2", "3", "4", "5", "6"},
	}
}

// loadSurvey overlays the YAML document at path on the default layout.
func loadSurvey(path string) (surveyConfig, error) {
	survey := defaultSurvey()
	if path == "" {
		return survey, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return surveyConfig{}, fmt.Errorf("unable to read survey config: %w", err)
	}
	if err := yaml.Unmarshal(data, &survey); err != nil {
		return surveyConfig{}, fmt.Errorf("unable to parse survey config %s: %w", path, err)
	}
	return survey, nil
}

func (s surveyConfig) isTutoring(code string) bool {
	return slices.Contains(s.TutoringCodes, code)
}

func (s surveyConfig) understandingField(code string) string {
	return fmt.Sprintf(s.Fields.Understanding, code)
}
