package triage

const DefaultDisclaimer = "This guidance is general information, not a diagnosis or a substitute for a veterinary exam. If you are worried about your pet, contact a veterinarian."

const (
	defaultTipsTitle = "Possible concerns to keep in mind"
	defaultTipsIntro = "Based on what you shared, these are some possibilities that could fit. None of them is a diagnosis."

	defaultNeedMoreInfoReason = "A few more details may help choose the safest next step."
)

// planDefaults es el contenido determinístico que usa el enforcer para
// completar campos faltantes, indexado por urgencia.
var planDefaults = map[Urgency]Plan{
	UrgencyHome: {
		Urgency:  UrgencyHome,
		Headline: "Home care may be reasonable for now, while you keep an eye on your pet",
		Why: []string{
			"The signs described may be manageable at home for the moment",
			"Watching closely can help you notice any change early",
			"Many mild problems like this could settle with rest and simple care",
		},
		DoNow: []string{
			"Keep fresh water available and encourage small, frequent sips",
			"Let your pet rest in a calm, comfortable place",
			"Offer a small, plain meal if your pet seems interested in food",
			"Write down any new or changing signs with the time they happen",
		},
		Avoid: []string{
			"Giving human medications unless a veterinarian told you to",
			"Rich foods, treats or table scraps for now",
			"Strenuous exercise until your pet is back to normal",
		},
		RedFlags: []string{
			"Repeated vomiting or diarrhea",
			"Not drinking or unable to keep water down",
			"Unusual tiredness, weakness or hiding",
			"Pain, restlessness or a swollen belly",
			"Difficulty breathing",
		},
		Disclaimer: DefaultDisclaimer,
	},
	UrgencyMonitor24h: {
		Urgency:  UrgencyMonitor24h,
		Headline: "Monitor your pet closely over the next 24 hours",
		Why: []string{
			"The signs described could be mild, but they may also change",
			"Watching closely for a day can help show whether things are improving",
			"A veterinarian can help if anything gets worse or does not improve",
		},
		DoNow: []string{
			"Keep fresh water available and check that your pet is drinking",
			"Keep your pet calm and limit activity for now",
			"Note when symptoms happen and how often",
			"Have your veterinarian's contact details ready in case things change",
		},
		Avoid: []string{
			"Giving human medications unless a veterinarian told you to",
			"Large meals, rich foods or treats for now",
			"Waiting longer than 24 hours if there is no improvement",
		},
		RedFlags: []string{
			"Symptoms getting worse or not improving within 24 hours",
			"Repeated vomiting, diarrhea or any blood",
			"Not eating or drinking",
			"Weakness, collapse or unusual sleepiness",
			"Difficulty breathing or pale gums",
		},
		Disclaimer: DefaultDisclaimer,
	},
	UrgencyVetNow: {
		Urgency:  UrgencyVetNow,
		Headline: "It may be safest to contact a veterinarian now",
		Why: []string{
			"Some of the signs described could need prompt professional attention",
			"A veterinarian can examine your pet and check for problems that are hard to see at home",
			"Getting help early is often the safest choice when signs could be serious",
		},
		DoNow: []string{
			"Call your veterinarian or the nearest emergency clinic now",
			"Keep your pet calm, warm and as still as possible",
			"Bring any packaging, plant or substance your pet may have eaten",
			"Note when the symptoms started and what you have seen",
		},
		Avoid: []string{
			"Giving any medication or home remedy unless a veterinarian told you to",
			"Making your pet vomit unless a veterinarian told you to",
			"Offering food until a veterinarian has advised you",
		},
		RedFlags: []string{
			"Difficulty breathing",
			"Collapse, fainting or being unable to stand",
			"Seizures",
			"Pale, blue or grey gums",
			"A swollen, hard or painful belly",
		},
		Disclaimer: DefaultDisclaimer,
	},
}

// defaultsFor devuelve una copia (los slices no se comparten con la tabla).
func defaultsFor(u Urgency) Plan {
	d, ok := planDefaults[u]
	if !ok {
		d = planDefaults[UrgencyMonitor24h]
	}
	return Plan{
		Urgency:    d.Urgency,
		Headline:   d.Headline,
		Why:        append([]string{}, d.Why...),
		DoNow:      append([]string{}, d.DoNow...),
		Avoid:      append([]string{}, d.Avoid...),
		RedFlags:   append([]string{}, d.RedFlags...),
		Disclaimer: d.Disclaimer,
	}
}

// SafeDefaultPlan es el plan fijo que sustituye cualquier salida inválida en la
// última ronda (incluida la caída total del generador).
func SafeDefaultPlan() Plan {
	p := defaultsFor(UrgencyMonitor24h)
	p.Headline = "We could not complete a tailored plan, so here are calm, general steps for the next 24 hours"
	return p
}
