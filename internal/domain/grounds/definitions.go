package grounds

// defaultDefinitions is the built-in catalog, in declaration order.
// Strength assessments reflect reported adjudication outcomes for each ground
// class; they feed the scoring engine's base scores, not any per-record
// tuning.
var defaultDefinitions = []Definition{
	{
		ID:          "signage-invalid",
		Title:       "Signage was missing, obscured or non-compliant",
		Description: "The signs or road markings governing the restriction were absent, faded, obscured or did not comply with the prescribed design, so the restriction was not adequately brought to the motorist's attention.",
		Category:    Statutory,
		Strength:    High,
		RequiredEvidence: []string{
			"photograph of signage",
			"photograph of road layout",
		},
		Scenarios: []string{
			"sign was faded",
			"sign hidden by tree",
			"no sign visible",
			"markings worn away",
			"sign facing wrong way",
		},
		LegalBasis: "Traffic Signs Regulations and General Directions 2016; Herron v Sunderland City Council [2011] EWCA Civ 400",
		Template: Template{
			Opening:         "I write to formally challenge Penalty Charge Notice {{ticket_number}} issued on {{issue_date}} at {{location}} in respect of vehicle {{vehicle_registration}}.",
			LegalArgument:   "The restriction was not adequately signed. Signage at {{location}} failed to meet the requirements of the {{legal_basis}}, and a restriction that is not properly indicated to motorists is unenforceable. {{description}}",
			EvidenceSection: "In support of this appeal I rely on the following evidence: {{evidence_list}}.",
			Conclusion:      "For the reasons above the contravention is not made out and I respectfully request that the penalty of £{{fine_amount}} be cancelled in full.",
		},
	},
	{
		ID:          "contravention-not-occurred",
		Title:       "The alleged contravention did not occur",
		Description: "The vehicle was not in the location alleged, the restriction was not in force at the material time, or the conduct described simply did not happen.",
		Category:    Statutory,
		Strength:    High,
		RequiredEvidence: []string{
			"photograph of vehicle position",
			"witness statement",
		},
		Scenarios: []string{
			"was not parked there",
			"restriction not in force",
			"wrong vehicle identified",
			"left before the restriction started",
		},
		LegalBasis: "Traffic Management Act 2004, Schedule 7 paragraph 2(4)(a)",
		Template: Template{
			Opening:         "I dispute Penalty Charge Notice {{ticket_number}} issued on {{issue_date}} concerning vehicle {{vehicle_registration}} at {{location}}.",
			LegalArgument:   "The contravention alleged did not occur. {{description}} Under {{legal_basis}}, the burden rests on the authority to establish the contravention, which it cannot do on these facts.",
			EvidenceSection: "The following evidence demonstrates the true position: {{evidence_list}}.",
			Conclusion:      "Accordingly the penalty of £{{fine_amount}} has been issued in error and I request its cancellation.",
		},
	},
	{
		ID:          "valid-ticket-displayed",
		Title:       "A valid ticket or pay-and-display receipt was displayed",
		Description: "Payment was made and a valid ticket, voucher or pay-and-display receipt was displayed in accordance with the conditions of use.",
		Category:    Statutory,
		Strength:    High,
		RequiredEvidence: []string{
			"parking ticket",
			"payment receipt",
		},
		Scenarios: []string{
			"ticket was displayed",
			"ticket blew off the dashboard",
			"paid for parking",
			"receipt shows payment",
		},
		LegalBasis: "Traffic Management Act 2004, Schedule 7 paragraph 2(4)(e)",
		Template: Template{
			Opening:         "I wish to appeal Penalty Charge Notice {{ticket_number}} issued to vehicle {{vehicle_registration}} on {{issue_date}} at {{location}}.",
			LegalArgument:   "Payment for parking was duly made and a valid ticket was displayed. {{description}} The penalty therefore exceeds the amount applicable in the circumstances within the meaning of {{legal_basis}}.",
			EvidenceSection: "I enclose the following in support: {{evidence_list}}.",
			Conclusion:      "As payment was made in good faith I request that the penalty of £{{fine_amount}} be withdrawn.",
		},
	},
	{
		ID:          "permit-valid",
		Title:       "A valid permit or exemption applied",
		Description: "The vehicle held a valid residents' permit, business permit, dispensation or other exemption covering the time and place of the alleged contravention.",
		Category:    Statutory,
		Strength:    Medium,
		RequiredEvidence: []string{
			"copy of permit",
			"photograph of permit displayed",
		},
		Scenarios: []string{
			"resident permit holder",
			"permit fell off windscreen",
			"dispensation in place",
		},
		LegalBasis: "Traffic Management Act 2004, Schedule 7 paragraph 2(4)(b)",
		Template: Template{
			Opening:         "I appeal Penalty Charge Notice {{ticket_number}} issued on {{issue_date}} at {{location}} to vehicle {{vehicle_registration}}.",
			LegalArgument:   "A valid permit covered the vehicle at the material time, so no contravention occurred. {{description}} {{legal_basis}} applies.",
			EvidenceSection: "Supporting evidence: {{evidence_list}}.",
			Conclusion:      "I ask that the penalty of £{{fine_amount}} be cancelled in light of the valid permit.",
		},
	},
	{
		ID:          "machine-fault",
		Title:       "The payment machine was not working",
		Description: "The pay-and-display machine or payment system was out of order, rejected payment, or otherwise prevented the motorist from paying.",
		Category:    Statutory,
		Strength:    Medium,
		RequiredEvidence: []string{
			"photograph of machine",
			"record of attempted payment",
		},
		Scenarios: []string{
			"machine out of order",
			"machine rejected coins",
			"card payment declined by terminal",
			"app would not load",
		},
		LegalBasis: "Traffic Management Act 2004, Schedule 7 paragraph 2(4)(a)",
		Template: Template{
			Opening:         "I challenge Penalty Charge Notice {{ticket_number}} issued at {{location}} on {{issue_date}} to vehicle {{vehicle_registration}}.",
			LegalArgument:   "I attempted to pay but the payment equipment provided was not in working order. {{description}} A motorist cannot be penalised for the authority's defective equipment; {{legal_basis}} applies.",
			EvidenceSection: "I rely on the following evidence: {{evidence_list}}.",
			Conclusion:      "In the circumstances the penalty of £{{fine_amount}} should be cancelled.",
		},
	},
	{
		ID:          "blue-badge",
		Title:       "Blue Badge holder entitled to the concession",
		Description: "The driver or passenger held a valid Blue Badge entitling the vehicle to the disabled parking concession at the time and place of the alleged contravention.",
		Category:    Statutory,
		Strength:    High,
		RequiredEvidence: []string{
			"copy of blue badge",
			"photograph of badge displayed",
		},
		Scenarios: []string{
			"blue badge displayed",
			"badge fell face down",
			"disabled bay used with badge",
		},
		LegalBasis: "Chronically Sick and Disabled Persons Act 1970, section 21",
		Template: Template{
			Opening:         "I appeal Penalty Charge Notice {{ticket_number}} issued on {{issue_date}} at {{location}} in respect of vehicle {{vehicle_registration}}.",
			LegalArgument:   "A valid Blue Badge issued under {{legal_basis}} covered the vehicle, entitling it to the concession relied upon. {{description}}",
			EvidenceSection: "I enclose: {{evidence_list}}.",
			Conclusion:      "Given the valid badge I request cancellation of the £{{fine_amount}} penalty.",
		},
	},
	{
		ID:          "loading-unloading",
		Title:       "Vehicle was actively loading or unloading",
		Description: "The vehicle was stopped only for as long as necessary to load or unload goods, an activity permitted on most restrictions.",
		Category:    Statutory,
		Strength:    Medium,
		RequiredEvidence: []string{
			"delivery note",
			"witness statement",
		},
		Scenarios: []string{
			"delivering goods",
			"collecting heavy items",
			"loading the van",
			"unloading furniture",
		},
		LegalBasis: "Road Traffic Regulation Act 1984, section 122; the relevant Traffic Regulation Order's loading exemption",
		Template: Template{
			Opening:         "I contest Penalty Charge Notice {{ticket_number}} issued to vehicle {{vehicle_registration}} on {{issue_date}} at {{location}}.",
			LegalArgument:   "The vehicle was engaged in active loading/unloading throughout the period observed, an exempted activity under {{legal_basis}}. {{description}}",
			EvidenceSection: "Evidence of the loading activity: {{evidence_list}}.",
			Conclusion:      "As the stop fell within the loading exemption I request that the £{{fine_amount}} penalty be cancelled.",
		},
	},
	{
		ID:          "vehicle-stolen",
		Title:       "Vehicle was stolen or taken without consent",
		Description: "The vehicle was stolen, or taken and used without the keeper's consent, before the alleged contravention.",
		Category:    Statutory,
		Strength:    High,
		RequiredEvidence: []string{
			"police crime reference",
			"insurance claim record",
		},
		Scenarios: []string{
			"car was stolen",
			"reported to the police",
			"taken without consent",
		},
		LegalBasis: "Traffic Management Act 2004, Schedule 7 paragraph 2(4)(c)",
		Template: Template{
			Opening:         "I appeal Penalty Charge Notice {{ticket_number}} concerning vehicle {{vehicle_registration}}, alleged to have contravened at {{location}} on {{issue_date}}.",
			LegalArgument:   "At the material time the vehicle had been taken without the keeper's consent. Under {{legal_basis}} the keeper is not liable in these circumstances. {{description}}",
			EvidenceSection: "I attach: {{evidence_list}}.",
			Conclusion:      "Liability for the £{{fine_amount}} penalty does not rest with me and I request its cancellation.",
		},
	},
	{
		ID:          "not-the-keeper",
		Title:       "Not the owner or keeper at the material time",
		Description: "The recipient had sold, transferred or not yet acquired the vehicle when the contravention allegedly occurred.",
		Category:    Statutory,
		Strength:    High,
		RequiredEvidence: []string{
			"proof of sale",
			"DVLA acknowledgement of transfer",
		},
		Scenarios: []string{
			"sold the car before the date",
			"new keeper notified",
			"never owned the vehicle",
		},
		LegalBasis: "Traffic Management Act 2004, Schedule 7 paragraph 2(4)(b)",
		Template: Template{
			Opening:         "I write regarding Penalty Charge Notice {{ticket_number}} addressed to me in respect of vehicle {{vehicle_registration}}.",
			LegalArgument:   "I was not the owner or keeper of the vehicle on {{issue_date}}. {{description}} Under {{legal_basis}} liability cannot attach to me.",
			EvidenceSection: "Proof of the transfer of keepership: {{evidence_list}}.",
			Conclusion:      "I request that the £{{fine_amount}} penalty be cancelled as against me and redirected appropriately.",
		},
	},
	{
		ID:          "penalty-exceeded",
		Title:       "Penalty exceeds the amount applicable",
		Description: "The sum demanded is greater than the amount applicable in the circumstances, for example the wrong contravention band or a discount wrongly refused.",
		Category:    Statutory,
		Strength:    High,
		RequiredEvidence: []string{
			"copy of penalty notice",
			"payment record",
		},
		Scenarios: []string{
			"charged the higher band",
			"discount period refused",
			"amount exceeds the statutory maximum",
		},
		LegalBasis: "Traffic Management Act 2004, Schedule 7 paragraph 2(4)(f)",
		Template: Template{
			Opening:         "I challenge the amount demanded under Penalty Charge Notice {{ticket_number}} issued on {{issue_date}} at {{location}}.",
			LegalArgument:   "The penalty of £{{fine_amount}} exceeds the amount applicable in the circumstances, contrary to {{legal_basis}}. {{description}}",
			EvidenceSection: "Relevant documents: {{evidence_list}}.",
			Conclusion:      "I request that the penalty be reduced to the correct amount or cancelled.",
		},
	},
	{
		ID:          "grace-period",
		Title:       "Observation within the statutory grace period",
		Description: "The vehicle was observed for less than the mandatory grace period after a paid-for or permitted period expired.",
		Category:    Statutory,
		Strength:    Medium,
		RequiredEvidence: []string{
			"parking ticket",
			"timed photograph",
		},
		Scenarios: []string{
			"only a few minutes over",
			"returned within ten minutes",
			"grace period not allowed",
		},
		LegalBasis: "Civil Enforcement of Parking Contraventions (England) General Regulations 2022, regulation 6",
		Template: Template{
			Opening:         "I appeal Penalty Charge Notice {{ticket_number}} issued at {{location}} on {{issue_date}} to vehicle {{vehicle_registration}}.",
			LegalArgument:   "The notice was issued within the statutory grace period following expiry of a permitted period, contrary to {{legal_basis}}. {{description}}",
			EvidenceSection: "Supporting material: {{evidence_list}}.",
			Conclusion:      "The notice was issued prematurely and the £{{fine_amount}} penalty should be cancelled.",
		},
	},
	{
		ID:          "tro-invalid",
		Title:       "The underlying Traffic Regulation Order is invalid",
		Description: "The Traffic Regulation Order said to create the restriction is defective, was not properly made, or does not cover the location alleged.",
		Category:    Statutory,
		Strength:    High,
		RequiredEvidence: []string{
			"copy of the traffic regulation order",
			"map of the restriction",
		},
		Scenarios: []string{
			"order does not cover this street",
			"order never made",
			"restriction outside the order's plan",
		},
		LegalBasis: "Road Traffic Regulation Act 1984, sections 1 and 122",
		Template: Template{
			Opening:         "I formally contest Penalty Charge Notice {{ticket_number}} issued on {{issue_date}} at {{location}}.",
			LegalArgument:   "The restriction relied upon is not supported by a valid Traffic Regulation Order: {{description}} An enforcement notice founded on an invalid order cannot stand ({{legal_basis}}).",
			EvidenceSection: "I rely on: {{evidence_list}}.",
			Conclusion:      "The £{{fine_amount}} penalty is unenforceable and should be cancelled.",
		},
	},

	// Procedural grounds.
	{
		ID:          "notice-not-served",
		Title:       "Statutory notice was never received",
		Description: "The Notice to Owner, Enforcement Notice or Charge Certificate required by the statutory scheme was never served on or received by the keeper.",
		Category:    Procedural,
		Strength:    High,
		RequiredEvidence: []string{
			"proof of address",
			"statutory declaration",
		},
		Scenarios: []string{
			"never received the notice to owner",
			"first heard from the bailiffs",
			"post went to an old address",
		},
		LegalBasis: "Civil Enforcement of Parking Contraventions (England) General Regulations 2022, regulation 20; TE9 witness statement procedure",
		Template: Template{
			Opening:         "I write concerning Penalty Charge Notice {{ticket_number}} and the enforcement steps taken in respect of vehicle {{vehicle_registration}}.",
			LegalArgument:   "The statutory notices on which enforcement depends were never received. {{description}} Service is a precondition of liability under {{legal_basis}}.",
			EvidenceSection: "In support: {{evidence_list}}.",
			Conclusion:      "Enforcement of the £{{fine_amount}} penalty should be set aside and the matter returned to the representation stage.",
		},
	},
	{
		ID:          "notice-defective",
		Title:       "The penalty notice is defective on its face",
		Description: "The PCN omits or misstates statutorily required particulars such as the date, the contravention, the amount, or the payment and appeal periods.",
		Category:    Procedural,
		Strength:    Medium,
		RequiredEvidence: []string{
			"copy of penalty notice",
		},
		Scenarios: []string{
			"wrong date on the ticket",
			"wrong registration recorded",
			"contravention code missing",
			"discount period misstated",
		},
		LegalBasis: "Traffic Management Act 2004, section 78 and regulations made under it; R (Barnet LBC) v Parking Adjudicator [2006] EWHC 2357 (Admin)",
		Template: Template{
			Opening:         "I challenge Penalty Charge Notice {{ticket_number}} issued on {{issue_date}} at {{location}}.",
			LegalArgument:   "The notice fails to state the particulars required by {{legal_basis}} and is therefore a nullity. {{description}}",
			EvidenceSection: "The defects are apparent from: {{evidence_list}}.",
			Conclusion:      "A defective notice cannot found liability; the £{{fine_amount}} penalty must be cancelled.",
		},
	},
	{
		ID:          "late-service",
		Title:       "Notice served outside the statutory time limit",
		Description: "A postal PCN or Notice to Keeper was served later than the period the scheme allows, extinguishing or limiting liability.",
		Category:    Procedural,
		Strength:    Medium,
		RequiredEvidence: []string{
			"envelope with postmark",
			"copy of penalty notice",
		},
		Scenarios: []string{
			"notice arrived weeks later",
			"posted after the 14 day limit",
			"served out of time",
		},
		LegalBasis: "Protection of Freedoms Act 2012, Schedule 4 paragraph 9 (private land); Civil Enforcement Regulations 2022 (civil enforcement)",
		Template: Template{
			Opening:         "I dispute Penalty Charge Notice {{ticket_number}} relating to {{location}} on {{issue_date}}.",
			LegalArgument:   "The notice was served outside the period required by {{legal_basis}}, so the conditions for keeper liability were not met. {{description}}",
			EvidenceSection: "Evidence of the date of service: {{evidence_list}}.",
			Conclusion:      "I request cancellation of the £{{fine_amount}} penalty for late service.",
		},
	},
	{
		ID:          "no-evidence-of-contravention",
		Title:       "Authority holds no adequate evidence of the contravention",
		Description: "The authority's photographs, CCTV or CEO notes do not establish the contravention alleged, or contradict it.",
		Category:    Procedural,
		Strength:    Medium,
		RequiredEvidence: []string{
			"authority photographs",
			"photograph of vehicle position",
		},
		Scenarios: []string{
			"photos do not show the vehicle",
			"cctv unclear",
			"officer notes inconsistent",
		},
		LegalBasis: "Traffic Management Act 2004, Schedule 7; the civil burden of proof on the enforcement authority",
		Template: Template{
			Opening:         "I contest Penalty Charge Notice {{ticket_number}} issued on {{issue_date}} at {{location}}.",
			LegalArgument:   "The evidential record does not establish the contravention. {{description}} The burden under {{legal_basis}} is not discharged.",
			EvidenceSection: "I rely on the following: {{evidence_list}}.",
			Conclusion:      "Absent adequate evidence the £{{fine_amount}} penalty should be cancelled.",
		},
	},
	{
		ID:          "representations-ignored",
		Title:       "Representations made but never answered",
		Description: "Formal representations were submitted in time but the authority failed to serve a notice of rejection, stalling the statutory process.",
		Category:    Procedural,
		Strength:    Medium,
		RequiredEvidence: []string{
			"copy of representations",
			"proof of postage or email receipt",
		},
		Scenarios: []string{
			"appealed but heard nothing",
			"no rejection letter",
			"council never replied",
		},
		LegalBasis: "Civil Enforcement of Parking Contraventions (England) General Regulations 2022, regulation 21; TE9 ground (b)",
		Template: Template{
			Opening:         "I write regarding Penalty Charge Notice {{ticket_number}} and the representations submitted in respect of it.",
			LegalArgument:   "Representations were made within time yet no notice of rejection was ever served, contrary to {{legal_basis}}. Enforcement founded on that omission is unlawful. {{description}}",
			EvidenceSection: "Enclosed: {{evidence_list}}.",
			Conclusion:      "The enforcement of the £{{fine_amount}} penalty should be suspended and my representations determined.",
		},
	},
	{
		ID:          "already-paid",
		Title:       "The penalty has already been paid",
		Description: "Payment was made in full, or at the discounted rate within the discount period, yet enforcement has continued.",
		Category:    Procedural,
		Strength:    High,
		RequiredEvidence: []string{
			"payment receipt",
			"bank statement",
		},
		Scenarios: []string{
			"already paid the fine",
			"paid online and have confirmation",
			"payment not credited",
		},
		LegalBasis: "Traffic Management Act 2004, Schedule 7; TE9 ground (d)",
		Template: Template{
			Opening:         "I write regarding Penalty Charge Notice {{ticket_number}} for which payment has already been made.",
			LegalArgument:   "The penalty was paid in full. {{description}} Continued enforcement after payment is contrary to {{legal_basis}}.",
			EvidenceSection: "Proof of payment: {{evidence_list}}.",
			Conclusion:      "I ask that the record be corrected and all further enforcement of the £{{fine_amount}} penalty cease.",
		},
	},
	{
		ID:          "cctv-unauthorised",
		Title:       "Camera enforcement not permitted for this contravention",
		Description: "The contravention was enforced by CCTV in circumstances where camera enforcement is restricted to approved devices and prescribed contravention types.",
		Category:    Procedural,
		Strength:    Medium,
		RequiredEvidence: []string{
			"copy of penalty notice",
			"authority camera certification",
		},
		Scenarios: []string{
			"ticket issued by post from cctv",
			"camera car ticket",
			"no approved device certificate",
		},
		LegalBasis: "Civil Enforcement of Parking Contraventions (Approved Devices) Order; Deregulation Act 2015, section 39",
		Template: Template{
			Opening:         "I challenge Penalty Charge Notice {{ticket_number}} issued by post following camera observation at {{location}}.",
			LegalArgument:   "Camera enforcement was not permitted for this contravention type or the device was not an approved device, contrary to {{legal_basis}}. {{description}}",
			EvidenceSection: "I rely on: {{evidence_list}}.",
			Conclusion:      "The £{{fine_amount}} penalty was unlawfully issued and should be cancelled.",
		},
	},
	{
		ID:          "procedural-impropriety",
		Title:       "General procedural impropriety by the authority",
		Description: "The authority failed to observe a requirement of the statutory scheme not covered by a more specific ground, such as mishandling the discount period after an unsuccessful representation.",
		Category:    Procedural,
		Strength:    Medium,
		RequiredEvidence: []string{
			"correspondence with the authority",
		},
		Scenarios: []string{
			"discount not re-offered after rejection",
			"charge certificate issued too early",
			"wrong address used despite notification",
		},
		LegalBasis: "Traffic Management Act 2004, Schedule 7 paragraph 2(4)(d)",
		Template: Template{
			Opening:         "I appeal Penalty Charge Notice {{ticket_number}} issued on {{issue_date}} at {{location}}.",
			LegalArgument:   "There has been a procedural impropriety within the meaning of {{legal_basis}}: {{description}}",
			EvidenceSection: "The correspondence enclosed demonstrates the failure: {{evidence_list}}.",
			Conclusion:      "On account of the impropriety the £{{fine_amount}} penalty should be cancelled.",
		},
	},

	// Mitigating grounds.
	{
		ID:          "medical-emergency",
		Title:       "Medical emergency at the material time",
		Description: "The driver or a passenger suffered or was responding to a genuine medical emergency which made compliance impracticable.",
		Category:    Mitigating,
		Strength:    Medium,
		RequiredEvidence: []string{
			"medical report",
			"hospital letter",
		},
		Scenarios: []string{
			"rushed to hospital",
			"taken ill at the wheel",
			"attending an emergency",
			"heart attack",
		},
		LegalBasis: "",
		Template: Template{
			Opening:         "I ask the authority to exercise its discretion to cancel Penalty Charge Notice {{ticket_number}} issued on {{issue_date}} at {{location}}.",
			LegalArgument:   "The stop arose from a genuine medical emergency. {{description}} Enforcement in these circumstances would serve no legitimate purpose.",
			EvidenceSection: "Medical evidence enclosed: {{evidence_list}}.",
			Conclusion:      "I ask that compassionate discretion be exercised and the £{{fine_amount}} penalty cancelled.",
		},
	},
	{
		ID:          "vehicle-breakdown",
		Title:       "Vehicle broke down",
		Description: "A mechanical failure forced the vehicle to stop where it did; the driver took reasonable steps to move it as soon as possible.",
		Category:    Mitigating,
		Strength:    Medium,
		RequiredEvidence: []string{
			"breakdown service report",
			"garage invoice",
		},
		Scenarios: []string{
			"car broke down",
			"engine would not start",
			"recovery truck called",
			"flat tyre",
		},
		LegalBasis: "",
		Template: Template{
			Opening:         "I appeal Penalty Charge Notice {{ticket_number}} issued to vehicle {{vehicle_registration}} at {{location}} on {{issue_date}}.",
			LegalArgument:   "The vehicle suffered a mechanical failure and could not be moved. {{description}} The stop was involuntary and as brief as the breakdown allowed.",
			EvidenceSection: "Evidence of the breakdown: {{evidence_list}}.",
			Conclusion:      "I request that the £{{fine_amount}} penalty be cancelled as the contravention was wholly involuntary.",
		},
	},
	{
		ID:          "misleading-advice",
		Title:       "Acted on misleading official advice or instructions",
		Description: "A civil enforcement officer, police officer, sign or authority publication told the motorist the conduct was permitted.",
		Category:    Mitigating,
		Strength:    Low,
		RequiredEvidence: []string{
			"witness statement",
			"photograph of instruction or sign",
		},
		Scenarios: []string{
			"warden said it was fine",
			"directed there by police",
			"website said parking was free",
		},
		LegalBasis: "",
		Template: Template{
			Opening:         "I appeal Penalty Charge Notice {{ticket_number}} issued on {{issue_date}} at {{location}}.",
			LegalArgument:   "I acted on instructions or information from an official source indicating the conduct was permitted. {{description}}",
			EvidenceSection: "Supporting evidence: {{evidence_list}}.",
			Conclusion:      "Having followed official advice in good faith, I ask that the £{{fine_amount}} penalty be cancelled.",
		},
	},
	{
		ID:          "bereavement",
		Title:       "Bereavement or serious family crisis",
		Description: "A death or comparable family crisis immediately before or during the contravention materially affected the motorist's conduct.",
		Category:    Mitigating,
		Strength:    Low,
		RequiredEvidence: []string{
			"supporting letter",
		},
		Scenarios: []string{
			"attending a funeral",
			"sudden death in the family",
		},
		LegalBasis: "",
		Template: Template{
			Opening:         "I ask the authority to consider the circumstances behind Penalty Charge Notice {{ticket_number}} issued on {{issue_date}}.",
			LegalArgument:   "At the time I was dealing with a family bereavement. {{description}} I ask that this be weighed as substantial mitigation.",
			EvidenceSection: "I can provide: {{evidence_list}}.",
			Conclusion:      "I respectfully request discretionary cancellation of the £{{fine_amount}} penalty.",
		},
	},
	{
		ID:          "short-overstay",
		Title:       "Minimal overstay beyond the paid period",
		Description: "The vehicle overstayed a paid or permitted period by only a trivial margin.",
		Category:    Mitigating,
		Strength:    Low,
		RequiredEvidence: []string{
			"parking ticket",
		},
		Scenarios: []string{
			"five minutes over",
			"delayed returning to the car",
			"queue at the shop",
		},
		LegalBasis: "",
		Template: Template{
			Opening:         "I appeal Penalty Charge Notice {{ticket_number}} issued at {{location}} on {{issue_date}}.",
			LegalArgument:   "The overstay was trivial. {{description}} A penalty of £{{fine_amount}} is wholly disproportionate to the margin involved.",
			EvidenceSection: "The paid period is evidenced by: {{evidence_list}}.",
			Conclusion:      "I ask that proportionality be considered and the penalty cancelled or reduced.",
		},
	},
	{
		ID:          "financial-hardship",
		Title:       "Severe financial hardship",
		Description: "Payment of the penalty would cause exceptional financial hardship; relevant to discretion and to payment arrangements rather than liability.",
		Category:    Mitigating,
		Strength:    Low,
		RequiredEvidence: []string{
			"evidence of income",
		},
		Scenarios: []string{
			"cannot afford the fine",
			"on benefits",
			"severe hardship",
		},
		LegalBasis: "",
		Template: Template{
			Opening:         "I write regarding Penalty Charge Notice {{ticket_number}} issued on {{issue_date}}.",
			LegalArgument:   "Payment of £{{fine_amount}} would cause exceptional hardship. {{description}}",
			EvidenceSection: "I can evidence my means with: {{evidence_list}}.",
			Conclusion:      "I ask the authority to exercise discretion, or at minimum to agree an affordable payment arrangement.",
		},
	},
	{
		ID:          "first-contravention",
		Title:       "First contravention with a clean record",
		Description: "The motorist has no history of contraventions and asks for discretion on a first occasion.",
		Category:    Mitigating,
		Strength:    Low,
		RequiredEvidence: []string{
			"statement of record",
		},
		Scenarios: []string{
			"first ever ticket",
			"clean record",
			"never had a penalty before",
		},
		LegalBasis: "",
		Template: Template{
			Opening:         "I appeal Penalty Charge Notice {{ticket_number}} issued on {{issue_date}} at {{location}}.",
			LegalArgument:   "This is my first alleged contravention. {{description}} I ask that a warning be substituted on this occasion.",
			EvidenceSection: "Supporting information: {{evidence_list}}.",
			Conclusion:      "I request discretionary cancellation of the £{{fine_amount}} penalty in light of my record.",
		},
	},
	{
		ID:          "emergency-services",
		Title:       "Giving way to or obstructed by emergency services",
		Description: "The vehicle stopped or moved into a restricted area to give way to, or because it was obstructed by, emergency service vehicles or an incident.",
		Category:    Mitigating,
		Strength:    Medium,
		RequiredEvidence: []string{
			"witness statement",
			"photograph of the scene",
		},
		Scenarios: []string{
			"pulled over for an ambulance",
			"road closed by police",
			"forced into the bus lane",
		},
		LegalBasis: "",
		Template: Template{
			Opening:         "I contest Penalty Charge Notice {{ticket_number}} issued at {{location}} on {{issue_date}}.",
			LegalArgument:   "The manoeuvre was forced by an emergency services incident. {{description}} Compliance was impossible without obstructing the emergency response.",
			EvidenceSection: "Evidence of the incident: {{evidence_list}}.",
			Conclusion:      "The contravention was unavoidable and the £{{fine_amount}} penalty should be cancelled.",
		},
	},
	{
		ID:          "signage-contradictory",
		Title:       "Signs gave contradictory or confusing information",
		Description: "Two or more signs, or a sign and a road marking, gave conflicting indications such that a reasonable motorist could not determine the restriction.",
		Category:    Statutory,
		Strength:    Medium,
		RequiredEvidence: []string{
			"photograph of signage",
			"photograph of conflicting sign",
		},
		Scenarios: []string{
			"signs contradict each other",
			"one sign said 2 hours",
			"bay marked but sign prohibits",
		},
		LegalBasis: "Traffic Signs Regulations and General Directions 2016",
		Template: Template{
			Opening:         "I appeal Penalty Charge Notice {{ticket_number}} issued on {{issue_date}} at {{location}} to vehicle {{vehicle_registration}}.",
			LegalArgument:   "The signage was self-contradictory and failed the clarity required by {{legal_basis}}. {{description}}",
			EvidenceSection: "Photographs of the conflicting indications: {{evidence_list}}.",
			Conclusion:      "A restriction that cannot be understood cannot be enforced; I request cancellation of the £{{fine_amount}} penalty.",
		},
	},
	{
		ID:          "road-works-diversion",
		Title:       "Road works or diversion forced the contravention",
		Description: "Temporary works, closures or a signed diversion left no lawful route or stopping place, forcing the conduct alleged.",
		Category:    Mitigating,
		Strength:    Medium,
		RequiredEvidence: []string{
			"photograph of road works",
			"diversion notice",
		},
		Scenarios: []string{
			"diversion sent me into the bus lane",
			"road works blocked the exit",
			"temporary lights forced the stop",
		},
		LegalBasis: "",
		Template: Template{
			Opening:         "I contest Penalty Charge Notice {{ticket_number}} issued at {{location}} on {{issue_date}}.",
			LegalArgument:   "Temporary works left no lawful alternative to the conduct alleged. {{description}}",
			EvidenceSection: "Evidence of the works and diversion: {{evidence_list}}.",
			Conclusion:      "As the contravention was forced by the road layout I request cancellation of the £{{fine_amount}} penalty.",
		},
	},
	{
		ID:          "keeper-liability-not-established",
		Title:       "Private operator has not established keeper liability",
		Description: "On private land, the operator failed to meet the strict conditions for transferring liability from driver to keeper.",
		Category:    Procedural,
		Strength:    Medium,
		RequiredEvidence: []string{
			"copy of notice to keeper",
		},
		Scenarios: []string{
			"private operator demanding payment",
			"notice to keeper non-compliant",
			"driver not identified",
		},
		LegalBasis: "Protection of Freedoms Act 2012, Schedule 4",
		Template: Template{
			Opening:         "I dispute parking charge notice {{ticket_number}} issued in respect of vehicle {{vehicle_registration}} at {{location}}.",
			LegalArgument:   "The strict conditions of {{legal_basis}} for keeper liability are not met. {{description}} As keeper I am under no obligation to identify the driver.",
			EvidenceSection: "I rely on: {{evidence_list}}.",
			Conclusion:      "No liability arises and I will not be paying the £{{fine_amount}} charge.",
		},
	},
	{
		ID:          "charge-disproportionate",
		Title:       "Private charge is an unenforceable penalty",
		Description: "A private parking charge grossly exceeds any genuine pre-estimate of loss or legitimate interest of the operator.",
		Category:    Statutory,
		Strength:    Low,
		RequiredEvidence: []string{
			"copy of charge notice",
			"tariff photograph",
		},
		Scenarios: []string{
			"charge out of all proportion",
			"free car park charging 100 pounds",
		},
		LegalBasis: "ParkingEye Ltd v Beavis [2015] UKSC 67",
		Template: Template{
			Opening:         "I dispute parking charge notice {{ticket_number}} issued at {{location}} on {{issue_date}}.",
			LegalArgument:   "The charge of £{{fine_amount}} bears no relation to any legitimate interest and is an unenforceable penalty, distinguishable from {{legal_basis}} on its facts. {{description}}",
			EvidenceSection: "Supporting evidence: {{evidence_list}}.",
			Conclusion:      "The charge is unenforceable and I request that it be cancelled.",
		},
	},
}
