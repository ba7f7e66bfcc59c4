package types

// Seed data for a fresh session. The dataset mirrors the demo company used
// throughout the product: one medium Vietnamese manufacturer, five questions
// across the three pillars, three documents, three planned actions.

// SeedCompany returns the initial company profile.
func SeedCompany() CompanyProfile {
	return CompanyProfile{
		Name:          "Viet Manufacturing Co., Ltd",
		Industry:      "Manufacturing",
		Size:          SizeMedium,
		Location:      "Ho Chi Minh City, Vietnam",
		ReportingYear: 2024,
	}
}

// SeedQuestions returns the initial question set in display order.
func SeedQuestions() []Question {
	return []Question{
		{
			ID:          "E1",
			Category:    CategoryEnvironment,
			Topic:       "Energy",
			Text:        "Total Electricity Consumption",
			Description: "Please enter the total electricity consumed by your organization during the reporting period.",
			Unit:        "kWh",
			Status:      StatusNotStarted,
			EvidenceIDs: []string{},
		},
		{
			ID:          "E2",
			Category:    CategoryEnvironment,
			Topic:       "GHG Emissions",
			Text:        "Scope 1 Emissions (Fuel)",
			Description: "Direct emissions from owned or controlled sources (e.g., company vehicles, generators).",
			Value:       "12500",
			Unit:        "tCO2e",
			Status:      StatusInProgress,
			EvidenceIDs: []string{"ev-002"},
			LastUpdated: "2024-05-10",
		},
		{
			ID:          "S1",
			Category:    CategorySocial,
			Topic:       "Workforce",
			Text:        "Total Number of Employees",
			Description: "Headcount as of the end of the reporting period.",
			Value:       "45",
			Unit:        "FTE",
			Status:      StatusCompleted,
			EvidenceIDs: []string{"ev-003"},
		},
		{
			ID:          "S2",
			Category:    CategorySocial,
			Topic:       "Health & Safety",
			Text:        "Work-related Injuries",
			Description: "Number of recordable work-related injuries.",
			Value:       "0",
			Unit:        "Incidents",
			Status:      StatusVerified,
			EvidenceIDs: []string{},
		},
		{
			ID:          "G1",
			Category:    CategoryGovernance,
			Topic:       "Ethics",
			Text:        "Code of Conduct",
			Description: "Do you have a written Code of Conduct distributed to all employees?",
			Value:       "Yes",
			Status:      StatusCompleted,
			EvidenceIDs: []string{"ev-001"},
		},
	}
}

// SeedEvidence returns the initial document library, most recent first.
func SeedEvidence() []Evidence {
	return []Evidence{
		{
			ID:                "ev-001",
			Filename:          "Code_of_Conduct_2024.pdf",
			UploadDate:        "2024-01-15",
			Type:              EvidencePolicy,
			RelatedQuestionID: "G1",
		},
		{
			ID:                "ev-002",
			Filename:          "Fuel_Receipts_Q1.pdf",
			UploadDate:        "2024-04-02",
			Type:              EvidenceInvoice,
			RelatedQuestionID: "E2",
			ExtractedData:     map[string]string{"liters": "4500", "type": "Diesel"},
			ConfidenceScore:   0.92,
		},
		{
			ID:                "ev-003",
			Filename:          "HR_Report_Dec2023.xlsx",
			UploadDate:        "2024-01-20",
			Type:              EvidenceReport,
			RelatedQuestionID: "S1",
		},
	}
}

// SeedActions returns the initial action board.
func SeedActions() []ActionPlanItem {
	return []ActionPlanItem{
		{ID: "a1", Title: "Install LED Lighting in Warehouse", Impact: ImpactMedium, Effort: EffortEasy, Status: ActionInProgress},
		{ID: "a2", Title: "Develop Supplier Code of Conduct", Impact: ImpactHigh, Effort: EffortMedium, Status: ActionPlanned},
		{ID: "a3", Title: "Switch to Hybrid Company Cars", Impact: ImpactHigh, Effort: EffortHard, Status: ActionPlanned},
	}
}
