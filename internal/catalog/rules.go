package catalog

// Phenotype is a metabolizer (or transporter-function) classification.
type Phenotype string

const (
	PhenotypePM      Phenotype = "PM"  // poor metabolizer
	PhenotypeIM      Phenotype = "IM"  // intermediate metabolizer
	PhenotypeNM      Phenotype = "NM"  // normal metabolizer
	PhenotypeRM      Phenotype = "RM"  // rapid metabolizer
	PhenotypeURM     Phenotype = "URM" // ultra-rapid metabolizer
	PhenotypeUnknown Phenotype = "Unknown"
)

// RiskLabel is the clinical risk classification of a guideline rule.
type RiskLabel string

const (
	RiskSafe        RiskLabel = "Safe"
	RiskAdjust      RiskLabel = "Adjust Dosage"
	RiskToxic       RiskLabel = "Toxic"
	RiskIneffective RiskLabel = "Ineffective"
	RiskUnknown     RiskLabel = "Unknown"
)

// Severity grades the clinical consequence of ignoring a rule.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// RuleKey is the composite lookup key for the guideline rule table.
type RuleKey struct {
	Gene      string
	Drug      string
	Phenotype Phenotype
}

// GuidelineRule is one clinical-guideline recommendation record.
type GuidelineRule struct {
	Gene             string    `json:"gene"`
	Drug             string    `json:"drug"`
	Phenotype        Phenotype `json:"phenotype"`
	RiskLabel        RiskLabel `json:"risk_label"`
	Severity         Severity  `json:"severity"`
	Confidence       float64   `json:"confidence"`
	Action           string    `json:"recommended_action"`
	DosageAdjustment string    `json:"dosage_adjustment"`
	Summary          string    `json:"summary"`
	Mechanism        string    `json:"mechanism"`
}

// builtinRules is the built-in guideline rule table, derived from CPIC
// dosing guidelines for the panel drugs.
var builtinRules = []GuidelineRule{
	// CYP2D6 / CODEINE
	{
		Gene: "CYP2D6", Drug: "CODEINE", Phenotype: PhenotypeNM,
		RiskLabel: RiskSafe, Severity: SeverityNone, Confidence: 0.95,
		Action:           "Use codeine at label-recommended dosage.",
		DosageAdjustment: "No adjustment required.",
		Summary:          "Normal CYP2D6 activity; expected morphine formation from codeine.",
		Mechanism:        "CYP2D6 O-demethylates codeine to morphine, the active analgesic metabolite.",
	},
	{
		Gene: "CYP2D6", Drug: "CODEINE", Phenotype: PhenotypeIM,
		RiskLabel: RiskAdjust, Severity: SeverityModerate, Confidence: 0.85,
		Action:           "Use codeine with close monitoring for insufficient analgesia.",
		DosageAdjustment: "Start at label dose; escalate or switch to a non-CYP2D6 opioid if pain control is inadequate.",
		Summary:          "Reduced CYP2D6 activity; diminished conversion of codeine to morphine.",
		Mechanism:        "One reduced- or no-function allele lowers CYP2D6 O-demethylation capacity.",
	},
	{
		Gene: "CYP2D6", Drug: "CODEINE", Phenotype: PhenotypePM,
		RiskLabel: RiskIneffective, Severity: SeverityHigh, Confidence: 0.97,
		Action:           "Avoid codeine; select an alternative analgesic not dependent on CYP2D6 activation.",
		DosageAdjustment: "Do not titrate codeine upward; switch to morphine or a non-opioid analgesic.",
		Summary:          "Absent CYP2D6 activity; codeine provides little or no analgesia.",
		Mechanism:        "Two no-function alleles abolish conversion of the prodrug codeine to morphine.",
	},
	{
		Gene: "CYP2D6", Drug: "CODEINE", Phenotype: PhenotypeRM,
		RiskLabel: RiskAdjust, Severity: SeverityModerate, Confidence: 0.80,
		Action:           "Use codeine cautiously; monitor for early opioid adverse effects.",
		DosageAdjustment: "Consider starting below label dose.",
		Summary:          "Elevated CYP2D6 activity; faster-than-normal morphine formation.",
		Mechanism:        "An increased-function allele accelerates O-demethylation of codeine.",
	},
	{
		Gene: "CYP2D6", Drug: "CODEINE", Phenotype: PhenotypeURM,
		RiskLabel: RiskToxic, Severity: SeverityCritical, Confidence: 0.97,
		Action:           "Avoid codeine; risk of life-threatening morphine toxicity.",
		DosageAdjustment: "Contraindicated; use a non-CYP2D6 analgesic.",
		Summary:          "Ultra-rapid CYP2D6 activity; excessive morphine exposure from standard codeine doses.",
		Mechanism:        "Duplicated or increased-function alleles drive rapid morphine accumulation and respiratory depression risk.",
	},

	// CYP2C19 / CLOPIDOGREL
	{
		Gene: "CYP2C19", Drug: "CLOPIDOGREL", Phenotype: PhenotypeNM,
		RiskLabel: RiskSafe, Severity: SeverityNone, Confidence: 0.95,
		Action:           "Use clopidogrel at label-recommended dosage.",
		DosageAdjustment: "No adjustment required.",
		Summary:          "Normal CYP2C19 activity; expected antiplatelet response.",
		Mechanism:        "CYP2C19 bioactivates clopidogrel to its active thiol metabolite.",
	},
	{
		Gene: "CYP2C19", Drug: "CLOPIDOGREL", Phenotype: PhenotypeIM,
		RiskLabel: RiskAdjust, Severity: SeverityModerate, Confidence: 0.87,
		Action:           "Consider prasugrel or ticagrelor if not contraindicated.",
		DosageAdjustment: "If clopidogrel is continued, platelet-function testing is advised.",
		Summary:          "Reduced clopidogrel activation; diminished platelet inhibition.",
		Mechanism:        "One no-function CYP2C19 allele lowers active-metabolite exposure.",
	},
	{
		Gene: "CYP2C19", Drug: "CLOPIDOGREL", Phenotype: PhenotypePM,
		RiskLabel: RiskIneffective, Severity: SeverityHigh, Confidence: 0.96,
		Action:           "Avoid clopidogrel; use prasugrel or ticagrelor if not contraindicated.",
		DosageAdjustment: "Dose escalation does not reliably overcome absent bioactivation.",
		Summary:          "Absent CYP2C19 activity; high risk of thrombotic events on clopidogrel.",
		Mechanism:        "Two no-function alleles prevent formation of the active thiol metabolite.",
	},
	{
		Gene: "CYP2C19", Drug: "CLOPIDOGREL", Phenotype: PhenotypeRM,
		RiskLabel: RiskSafe, Severity: SeverityLow, Confidence: 0.85,
		Action:           "Use clopidogrel at label-recommended dosage.",
		DosageAdjustment: "No adjustment required; slightly increased bleeding surveillance is reasonable.",
		Summary:          "Increased clopidogrel activation; adequate antiplatelet response expected.",
		Mechanism:        "An increased-function allele raises active-metabolite exposure modestly.",
	},
	{
		Gene: "CYP2C19", Drug: "CLOPIDOGREL", Phenotype: PhenotypeURM,
		RiskLabel: RiskSafe, Severity: SeverityLow, Confidence: 0.85,
		Action:           "Use clopidogrel at label-recommended dosage; monitor for bleeding.",
		DosageAdjustment: "No adjustment required.",
		Summary:          "Markedly increased clopidogrel activation; watch for bleeding.",
		Mechanism:        "Two increased-function alleles raise active-metabolite exposure.",
	},

	// CYP2C9 / WARFARIN
	{
		Gene: "CYP2C9", Drug: "WARFARIN", Phenotype: PhenotypeNM,
		RiskLabel: RiskSafe, Severity: SeverityNone, Confidence: 0.95,
		Action:           "Initiate warfarin per standard dosing algorithm.",
		DosageAdjustment: "No pharmacogenomic adjustment required.",
		Summary:          "Normal warfarin clearance expected.",
		Mechanism:        "CYP2C9 hydroxylates S-warfarin, the more potent enantiomer.",
	},
	{
		Gene: "CYP2C9", Drug: "WARFARIN", Phenotype: PhenotypeIM,
		RiskLabel: RiskAdjust, Severity: SeverityModerate, Confidence: 0.88,
		Action:           "Reduce initial warfarin dose and extend INR monitoring.",
		DosageAdjustment: "Consider a 25-50% reduction of the calculated starting dose.",
		Summary:          "Reduced S-warfarin clearance; elevated bleeding risk at standard doses.",
		Mechanism:        "Variant CYP2C9 alleles slow S-warfarin 7-hydroxylation.",
	},
	{
		Gene: "CYP2C9", Drug: "WARFARIN", Phenotype: PhenotypePM,
		RiskLabel: RiskAdjust, Severity: SeverityHigh, Confidence: 0.94,
		Action:           "Substantially reduce warfarin dose; intensive INR monitoring during initiation.",
		DosageAdjustment: "Consider a 50-80% reduction of the calculated starting dose or an alternative anticoagulant.",
		Summary:          "Severely reduced S-warfarin clearance; major bleeding risk at standard doses.",
		Mechanism:        "Two impaired CYP2C9 alleles markedly prolong S-warfarin half-life.",
	},

	// TPMT / AZATHIOPRINE
	{
		Gene: "TPMT", Drug: "AZATHIOPRINE", Phenotype: PhenotypeNM,
		RiskLabel: RiskSafe, Severity: SeverityNone, Confidence: 0.95,
		Action:           "Initiate azathioprine at standard target dose.",
		DosageAdjustment: "No adjustment required.",
		Summary:          "Normal thiopurine methylation; standard myelosuppression risk.",
		Mechanism:        "TPMT inactivates thiopurines by S-methylation, limiting cytotoxic nucleotide accumulation.",
	},
	{
		Gene: "TPMT", Drug: "AZATHIOPRINE", Phenotype: PhenotypeIM,
		RiskLabel: RiskAdjust, Severity: SeverityHigh, Confidence: 0.90,
		Action:           "Start azathioprine at 30-70% of target dose; titrate on blood counts.",
		DosageAdjustment: "Reduce starting dose; allow 2-4 weeks between dose increases.",
		Summary:          "Reduced TPMT activity; heightened risk of myelosuppression.",
		Mechanism:        "One no-function TPMT allele shifts metabolism toward cytotoxic thioguanine nucleotides.",
	},
	{
		Gene: "TPMT", Drug: "AZATHIOPRINE", Phenotype: PhenotypePM,
		RiskLabel: RiskToxic, Severity: SeverityCritical, Confidence: 0.97,
		Action:           "Avoid azathioprine or use drastically reduced doses with intensive monitoring.",
		DosageAdjustment: "If used at all, reduce to 10% of target dose given thrice weekly.",
		Summary:          "Absent TPMT activity; life-threatening myelosuppression at standard doses.",
		Mechanism:        "Two no-function alleles abolish thiopurine methylation; cytotoxic metabolites accumulate.",
	},

	// DPYD / FLUOROURACIL
	{
		Gene: "DPYD", Drug: "FLUOROURACIL", Phenotype: PhenotypeNM,
		RiskLabel: RiskSafe, Severity: SeverityNone, Confidence: 0.95,
		Action:           "Use fluoropyrimidines at label-recommended dosage.",
		DosageAdjustment: "No adjustment required.",
		Summary:          "Normal dihydropyrimidine dehydrogenase activity.",
		Mechanism:        "DPD catabolizes more than 80% of administered 5-fluorouracil.",
	},
	{
		Gene: "DPYD", Drug: "FLUOROURACIL", Phenotype: PhenotypeIM,
		RiskLabel: RiskAdjust, Severity: SeverityHigh, Confidence: 0.92,
		Action:           "Reduce fluoropyrimidine starting dose by 50%; titrate on toxicity.",
		DosageAdjustment: "Begin at half dose; escalate only after two cycles without grade >=2 toxicity.",
		Summary:          "Partial DPD deficiency; elevated risk of severe fluoropyrimidine toxicity.",
		Mechanism:        "A decreased-function DPYD variant slows 5-FU catabolism, raising systemic exposure.",
	},
	{
		Gene: "DPYD", Drug: "FLUOROURACIL", Phenotype: PhenotypePM,
		RiskLabel: RiskToxic, Severity: SeverityCritical, Confidence: 0.97,
		Action:           "Avoid 5-fluorouracil and capecitabine; select a non-fluoropyrimidine regimen.",
		DosageAdjustment: "Contraindicated at any dose in complete DPD deficiency.",
		Summary:          "Complete DPD deficiency; standard dosing can be fatal.",
		Mechanism:        "Two no-function DPYD alleles abolish 5-FU catabolism; drug accumulates to toxic levels.",
	},

	// SLCO1B1 / SIMVASTATIN
	{
		Gene: "SLCO1B1", Drug: "SIMVASTATIN", Phenotype: PhenotypeNM,
		RiskLabel: RiskSafe, Severity: SeverityNone, Confidence: 0.95,
		Action:           "Use simvastatin at label-recommended dosage.",
		DosageAdjustment: "No adjustment required.",
		Summary:          "Normal hepatic statin uptake; standard myopathy risk.",
		Mechanism:        "OATP1B1 transports simvastatin acid into hepatocytes, limiting plasma exposure.",
	},
	{
		Gene: "SLCO1B1", Drug: "SIMVASTATIN", Phenotype: PhenotypeIM,
		RiskLabel: RiskAdjust, Severity: SeverityModerate, Confidence: 0.88,
		Action:           "Prefer a lower simvastatin dose or an alternative statin (rosuvastatin, pravastatin).",
		DosageAdjustment: "Limit simvastatin to 20 mg daily; monitor creatine kinase if symptoms develop.",
		Summary:          "Decreased OATP1B1 function; elevated simvastatin exposure and myopathy risk.",
		Mechanism:        "A decreased-function SLCO1B1 allele reduces hepatic uptake of simvastatin acid.",
	},
	{
		Gene: "SLCO1B1", Drug: "SIMVASTATIN", Phenotype: PhenotypePM,
		RiskLabel: RiskToxic, Severity: SeverityHigh, Confidence: 0.94,
		Action:           "Avoid simvastatin; use an alternative statin at low dose with CK monitoring.",
		DosageAdjustment: "Do not exceed simvastatin 20 mg daily if no alternative exists.",
		Summary:          "Markedly impaired statin uptake; high risk of myopathy and rhabdomyolysis.",
		Mechanism:        "Two decreased-function SLCO1B1 alleles cause substantial simvastatin acid accumulation.",
	},
}
