package rentschedule

// WoodhurstFixture returns the sample schedule used by the seed script, demos
// and tests: a 12-unit supported scheme with a fully populated breakdown.
func WoodhurstFixture() Document {
	coreItems := []LineItem{
		{
			ID:                  "core-base-rent",
			Label:               "Base rent",
			Amount:              245.50,
			Description:         "Weekly charge for your accommodation.",
			EasyReadDescription: "The rent for your home.",
			Category:            CategoryRent,
		},
		{
			ID:                  "core-management",
			Label:               "Housing management",
			Amount:              32.18,
			Description:         "Staff costs for managing the scheme and tenancies.",
			EasyReadDescription: "Paying the people who run the building.",
			Category:            CategoryManagement,
		},
		{
			ID:                  "core-maintenance",
			Label:               "Responsive maintenance",
			Amount:              21.84,
			Description:         "Day-to-day repairs to your home and the building.",
			EasyReadDescription: "Fixing things when they break.",
			Category:            CategoryMaintenance,
		},
		{
			ID:                  "core-void-cover",
			Label:               "Void cover",
			Amount:              17.50,
			Description:         "Contribution towards costs of unoccupied units in the scheme.",
			EasyReadDescription: "Helps cover empty flats.",
			Category:            CategoryVoidCover,
			Calculation:         "5% of scheme core costs spread across occupied units",
			IsVoidCover:         true,
			VoidPercentage:      5,
		},
	}

	eligibleItems := []LineItem{
		{
			ID:                  "svc-communal-cleaning",
			Label:               "Communal cleaning",
			Amount:              24.75,
			Description:         "Cleaning of shared hallways, lounges and kitchens.",
			EasyReadDescription: "Cleaning the shared rooms.",
			Category:            CategoryCleaning,
		},
		{
			ID:                  "svc-window-cleaning",
			Label:               "Window cleaning",
			Amount:              6.50,
			Description:         "External window cleaning on a rolling schedule.",
			EasyReadDescription: "Cleaning the windows.",
			Category:            CategoryCleaning,
		},
		{
			ID:                  "svc-gardening",
			Label:               "Gardening",
			Amount:              12.30,
			Description:         "Maintaining the communal gardens.",
			EasyReadDescription: "Looking after the garden.",
			Category:            CategoryGardening,
		},
		{
			ID:                  "svc-grounds",
			Label:               "Grounds upkeep",
			Amount:              5.20,
			Description:         "Paths, fences and car park upkeep.",
			EasyReadDescription: "Looking after paths and fences.",
			Category:            CategoryGardening,
		},
		{
			ID:                  "svc-fire-alarm",
			Label:               "Fire alarm servicing",
			Amount:              4.25,
			Description:         "Quarterly servicing of the fire alarm system.",
			EasyReadDescription: "Checking the fire alarms work.",
			Category:            CategoryFireSafety,
		},
		{
			ID:                  "svc-fire-extinguishers",
			Label:               "Fire extinguishers",
			Amount:              1.50,
			Description:         "Annual inspection and replacement of extinguishers.",
			EasyReadDescription: "Checking the fire extinguishers.",
			Category:            CategoryFireSafety,
		},
		{
			ID:                  "svc-pest-control",
			Label:               "Pest control",
			Amount:              1.25,
			Description:         "Scheduled pest control visits to communal areas.",
			EasyReadDescription: "Keeping pests away.",
			Category:            CategoryPestControl,
		},
		{
			ID:                  "svc-communal-electric",
			Label:               "Communal electricity",
			Amount:              14.80,
			Description:         "Lighting and power for shared areas.",
			EasyReadDescription: "Electricity for the shared rooms.",
			Category:            CategoryCommunalUtility,
		},
		{
			ID:                  "svc-laundry",
			Label:               "Communal laundry",
			Amount:              8.95,
			Description:         "Running and maintaining the shared laundry.",
			EasyReadDescription: "The shared washing machines.",
			Category:            CategoryLaundry,
		},
		{
			ID:                  "svc-door-entry",
			Label:               "CCTV & door entry",
			Amount:              6.92,
			Description:         "Door entry system and CCTV maintenance.",
			EasyReadDescription: "Keeping the front door secure.",
			Category:            CategorySecurity,
		},
	}

	ineligibleItems := []LineItem{
		{
			ID:                  "inel-heating",
			Label:               "Personal heating",
			Amount:              38.60,
			Description:         "Heating supplied to your own flat.",
			EasyReadDescription: "Heating for your home.",
			Category:            CategoryHeating,
		},
		{
			ID:                  "inel-hot-water",
			Label:               "Personal hot water",
			Amount:              21.15,
			Description:         "Hot water supplied to your own flat.",
			EasyReadDescription: "Hot water for your home.",
			Category:            CategoryWater,
		},
		{
			ID:                  "inel-electricity",
			Label:               "Personal electricity",
			Amount:              27.44,
			Description:         "Electricity used inside your own flat.",
			EasyReadDescription: "Electricity for your home.",
			Category:            CategoryElectricity,
		},
		{
			ID:                  "inel-water-rates",
			Label:               "Water rates",
			Amount:              18.70,
			Description:         "Water and sewerage charges for your flat.",
			EasyReadDescription: "Water for your home.",
			Category:            CategoryWaterRates,
		},
		{
			ID:                  "inel-meals",
			Label:               "Meals service",
			Amount:              24.50,
			Description:         "Optional daily meals service.",
			EasyReadDescription: "Your meals.",
			Category:            CategoryCatering,
		},
	}

	doc := Document{
		PropertyID:   1,
		PropertyName: "Woodhurst House",
		Sections: Sections{
			CoreRent: Section{
				ID:            SectionCoreRent,
				Type:          SectionCoreRent,
				Title:         "Core Rent",
				EasyReadTitle: "Your rent",
				Items:         coreItems,
				Subtotal:      SectionSubtotal(coreItems),
			},
			EligibleCharges: Section{
				ID:            SectionEligibleCharges,
				Type:          SectionEligibleCharges,
				Title:         "Eligible Service Charges",
				EasyReadTitle: "Charges benefits can pay",
				Items:         eligibleItems,
				Subtotal:      SectionSubtotal(eligibleItems),
			},
			Ineligible: Section{
				ID:            SectionIneligible,
				Type:          SectionIneligible,
				Title:         "Ineligible Services",
				EasyReadTitle: "Bills you pay yourself",
				Items:         ineligibleItems,
				Subtotal:      SectionSubtotal(ineligibleItems),
			},
		},
	}
	doc.Totals = ComputeTotals(doc)
	return doc
}
