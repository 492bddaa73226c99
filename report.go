package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

type labeledCount struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type serviceBreakdown struct {
	Code           string         `json:"code"`
	Service        string         `json:"service"`
	Samples        int            `json:"samples"`
	AvgGradeImpact float64        `json:"avg_grade_impact"`
	Effects        []labeledCount `json:"effects"`
}

type consultationBreakdown struct {
	Service        string         `json:"service"`
	Samples        int            `json:"samples"`
	QualityOfLife  []labeledCount `json:"quality_of_life"`
	TimeManagement []labeledCount `json:"time_management"`
}

type understandingCount struct {
	Service string `json:"service"`
	Yes     int    `json:"yes"`
	No      int    `json:"no"`
}

type surveyReport struct {
	Completed           int                   `json:"completed"`
	Used                int                   `json:"used"`
	NotUsed             int                   `json:"not_used"`
	Majors              map[string]int        `json:"majors"`
	Tutoring            []serviceBreakdown    `json:"tutoring"`
	Consultation        consultationBreakdown `json:"consultation"`
	Recommended         int                   `json:"recommended"`
	NotRecommended      int                   `json:"not_recommended"`
	InitialReasons      []labeledCount        `json:"initial_reasons"`
	DoubleRecommended   int                   `json:"double_recommended"`
	ReasonsNotUsed      []labeledCount        `json:"reasons_not_used"`
	TutorsUsed          int                   `json:"tutors_used"`
	TutorsNotUsed       int                   `json:"tutors_not_used"`
	Understanding       []understandingCount  `json:"understanding"`
	SeenPresentation    int                   `json:"seen_presentation"`
	NotSeenPresentation int                   `json:"not_seen_presentation"`
}

// runReport loads the export, writes the majors file and prints the full
// breakdown to stdout.
func runReport(datasetPath string, majorsPath string, survey surveyConfig, stdout io.Writer, logger *zap.Logger) (surveyReport, error) {
	values, err := loadRecords(datasetPath)
	if err != nil {
		return surveyReport{}, err
	}
	logger.Info("loaded survey export", zap.String("path", datasetPath), zap.Int("rows", len(values)))

	finished, err := selectRecords(values,
		condition{Field: survey.Fields.Finished, Value: survey.FinishedValue},
		condition{Field: survey.Fields.DistributionChannel, Value: survey.Channel},
	)
	if err != nil {
		return surveyReport{}, fmt.Errorf("select finished responses: %w", err)
	}
	logger.Debug("selected finished responses", zap.Int("finished", len(finished)))

	majors, err := countMajors(finished, survey.Fields.Major, majorsPath, stdout)
	if err != nil {
		return surveyReport{}, fmt.Errorf("majors report: %w", err)
	}
	if majorsPath != "" {
		logger.Info("wrote majors report", zap.String("path", majorsPath), zap.Int("majors", len(majors)))
	}

	report, err := buildReport(finished, survey)
	if err != nil {
		return surveyReport{}, err
	}
	report.Majors = majors

	printReport(stdout, report)
	return report, nil
}

func buildReport(finished []Record, survey surveyConfig) (surveyReport, error) {
	fields := survey.Fields
	labels := survey.Labels
	report := surveyReport{Completed: len(finished)}

	byUse, err := partitionRecords(finished, fields.UsedResource)
	if err != nil {
		return surveyReport{}, err
	}
	used, err := byUse.Get(survey.Yes)
	if err != nil {
		return surveyReport{}, fmt.Errorf("used cohort: %w", err)
	}
	notUsed, err := byUse.Get(survey.No)
	if err != nil {
		return surveyReport{}, fmt.Errorf("not used cohort: %w", err)
	}
	report.Used = len(used)
	report.NotUsed = len(notUsed)

	// A student who used several services is counted under each of them.
	byService, err := partitionRecords(used, fields.ServiceType)
	if err != nil {
		return surveyReport{}, err
	}
	for _, code := range byService.Codes() {
		if !survey.isTutoring(code) {
			continue
		}
		entries := byService[code]
		breakdown, err := buildServiceBreakdown(code, entries, survey)
		if err != nil {
			return surveyReport{}, err
		}
		report.Tutoring = append(report.Tutoring, breakdown)
	}

	consultations, err := byService.Get(survey.ConsultationCode)
	if err != nil {
		return surveyReport{}, fmt.Errorf("consultation users: %w", err)
	}
	report.Consultation, err = buildConsultationBreakdown(consultations, survey)
	if err != nil {
		return surveyReport{}, err
	}

	byRecommended, err := partitionRecords(used, fields.Recommended)
	if err != nil {
		return surveyReport{}, err
	}
	recommended, err := byRecommended.Get(survey.Yes)
	if err != nil {
		return surveyReport{}, fmt.Errorf("recommended: %w", err)
	}
	report.Recommended = len(recommended)
	if report.NotRecommended, err = byRecommended.Count(survey.No); err != nil {
		return surveyReport{}, fmt.Errorf("not recommended: %w", err)
	}

	byReason, err := partitionRecords(used, fields.InitialReason)
	if err != nil {
		return surveyReport{}, err
	}
	if report.InitialReasons, err = countByLabel(byReason, labels.Reasons, true); err != nil {
		return surveyReport{}, fmt.Errorf("initial reasons: %w", err)
	}

	recommendedByReason, err := partitionRecords(recommended, fields.InitialReason)
	if err != nil {
		return surveyReport{}, err
	}
	if report.DoubleRecommended, err = recommendedByReason.Count(survey.StudentReferral); err != nil {
		return surveyReport{}, fmt.Errorf("double recommendation: %w", err)
	}

	byReasonNot, err := partitionRecords(notUsed, fields.ReasonNotUsed)
	if err != nil {
		return surveyReport{}, err
	}
	if report.ReasonsNotUsed, err = countByLabel(byReasonNot, labels.ReasonsNotUse, true); err != nil {
		return surveyReport{}, fmt.Errorf("reasons not used: %w", err)
	}

	if report.TutorsUsed, err = countAnswer(used, fields.TutorStatus, survey.Yes); err != nil {
		return surveyReport{}, fmt.Errorf("tutors used: %w", err)
	}
	if report.TutorsNotUsed, err = countAnswer(notUsed, fields.TutorStatus, survey.Yes); err != nil {
		return surveyReport{}, fmt.Errorf("tutors not used: %w", err)
	}

	for _, code := range survey.UnderstandingCodes {
		field := survey.understandingField(code)
		yes, err := countAnswer(finished, field, survey.Yes)
		if err != nil {
			return surveyReport{}, fmt.Errorf("%s: %w", field, err)
		}
		no, err := countAnswer(finished, field, survey.No)
		if err != nil {
			return surveyReport{}, fmt.Errorf("%s: %w", field, err)
		}
		service, err := labels.Services.label(code)
		if err != nil {
			return surveyReport{}, err
		}
		report.Understanding = append(report.Understanding, understandingCount{Service: service, Yes: yes, No: no})
	}

	if report.SeenPresentation, err = countAnswer(finished, fields.Presentation, survey.Yes); err != nil {
		return surveyReport{}, fmt.Errorf("seen presentation: %w", err)
	}
	if report.NotSeenPresentation, err = countAnswer(finished, fields.Presentation, survey.No); err != nil {
		return surveyReport{}, fmt.Errorf("not seen presentation: %w", err)
	}

	return report, nil
}

func buildServiceBreakdown(code string, entries []Record, survey surveyConfig) (serviceBreakdown, error) {
	service, err := survey.Labels.Services.label(code)
	if err != nil {
		return serviceBreakdown{}, err
	}
	avg, err := meanField(entries, survey.Fields.GradeImpact)
	if err != nil {
		return serviceBreakdown{}, fmt.Errorf("%s grade impact: %w", service, err)
	}
	byEffect, err := partitionRecords(entries, survey.Fields.Effect)
	if err != nil {
		return serviceBreakdown{}, err
	}
	effects, err := countByLabel(byEffect, survey.Labels.Effects, false)
	if err != nil {
		return serviceBreakdown{}, fmt.Errorf("%s effect: %w", service, err)
	}
	return serviceBreakdown{
		Code:           code,
		Service:        service,
		Samples:        len(entries),
		AvgGradeImpact: avg,
		Effects:        effects,
	}, nil
}

func buildConsultationBreakdown(entries []Record, survey surveyConfig) (consultationBreakdown, error) {
	service, err := survey.Labels.Services.label(survey.ConsultationCode)
	if err != nil {
		return consultationBreakdown{}, err
	}
	byQuality, err := partitionRecords(entries, survey.Fields.QualityOfLife)
	if err != nil {
		return consultationBreakdown{}, err
	}
	quality, err := countByLabel(byQuality, survey.Labels.Effects, false)
	if err != nil {
		return consultationBreakdown{}, fmt.Errorf("quality of life: %w", err)
	}
	byTime, err := partitionRecords(entries, survey.Fields.TimeManagement)
	if err != nil {
		return consultationBreakdown{}, err
	}
	timeManagement, err := countByLabel(byTime, survey.Labels.Effects, false)
	if err != nil {
		return consultationBreakdown{}, fmt.Errorf("time management: %w", err)
	}
	return consultationBreakdown{
		Service:        service,
		Samples:        len(entries),
		QualityOfLife:  quality,
		TimeManagement: timeManagement,
	}, nil
}

// countByLabel sizes each bucket in code order. Every code must have a label
// unless it is the blank code and skipBlank is set.
func countByLabel(buckets Buckets, labels labelTable, skipBlank bool) ([]labeledCount, error) {
	result := []labeledCount{}
	for _, code := range buckets.Codes() {
		if skipBlank && code == "" {
			continue
		}
		label, err := labels.label(code)
		if err != nil {
			return nil, err
		}
		result = append(result, labeledCount{Code: code, Label: label, Count: len(buckets[code])})
	}
	return result, nil
}

func countAnswer(records []Record, field string, code string) (int, error) {
	buckets, err := partitionRecords(records, field)
	if err != nil {
		return 0, err
	}
	return buckets.Count(code)
}

func printReport(w io.Writer, report surveyReport) {
	fmt.Fprintf(w, "%d completed responses\n", report.Completed)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%d students used ARC resources\n", report.Used)
	fmt.Fprintf(w, "%d students did not use ARC resources\n", report.NotUsed)
	fmt.Fprintln(w)

	for _, entry := range report.Tutoring {
		fmt.Fprintf(w, "%30s: %2d samples\n", entry.Service, entry.Samples)
		fmt.Fprintf(w, "%30s +%.2f Grade impact\n", "", entry.AvgGradeImpact)
		printBreakdown(w, entry.Effects)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%30s: %2d samples\n", report.Consultation.Service, report.Consultation.Samples)
	fmt.Fprintf(w, "%30s Quality of Life\n", "")
	printBreakdown(w, report.Consultation.QualityOfLife)
	fmt.Fprintf(w, "%30s Time Management\n", "")
	printBreakdown(w, report.Consultation.TimeManagement)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%d students recommended ARC resources to other students\n", report.Recommended)
	fmt.Fprintf(w, "%d students did not recommend ARC resources to other students\n", report.NotRecommended)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Reasons for initially going to ARC")
	printCounts(w, report.InitialReasons)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%2d students were recommended to the ARC by other students and, in turn, recommended other students to the ARC\n", report.DoubleRecommended)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Reasons for not going to ARC")
	printCounts(w, report.ReasonsNotUsed)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%d TA's or peer tutors used ARC resources\n", report.TutorsUsed)
	fmt.Fprintf(w, "%d TA's or peer tutors did not use ARC resources\n", report.TutorsNotUsed)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Students who understand what each service does")
	for _, entry := range report.Understanding {
		fmt.Fprintf(w, " * Yes: %2d / No: %2d: %s\n", entry.Yes, entry.No, entry.Service)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%d students have seen an ARC presentation\n", report.SeenPresentation)
	fmt.Fprintf(w, "%d students have not seen an ARC presentation\n", report.NotSeenPresentation)
}

func printBreakdown(w io.Writer, counts []labeledCount) {
	for _, entry := range counts {
		fmt.Fprintf(w, "%30s   * %2d %s\n", "", entry.Count, entry.Label)
	}
}

func printCounts(w io.Writer, counts []labeledCount) {
	for _, entry := range counts {
		fmt.Fprintf(w, " * %2d: %s\n", entry.Count, entry.Label)
	}
}

func writeJSON(report surveyReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
