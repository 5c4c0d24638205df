package appealcase

import (
	"regexp"
	"sort"
	"strings"
)

// Category groups ticket types by the body that enforces them.  The category
// drives conversation branching: TEC cases insert the statutory-form
// selection stage that other categories skip.
type Category string

const (
	CategoryPCN     Category = "PCN"     // council-issued Penalty Charge Notice
	CategoryFPN     Category = "FPN"     // police Fixed Penalty Notice
	CategoryTFL     Category = "TFL"     // Transport for London road-charging schemes
	CategoryTEC     Category = "TEC"     // Traffic Enforcement Centre registered debt
	CategoryPrivate Category = "PRIVATE" // private parking charge notice
	CategoryDVLA    Category = "DVLA"    // DVLA vehicle tax / SORN penalties
)

// TicketType is one of the categorical penalty types the intake flow can
// classify.  Synonyms are matched case-insensitively against the user's free
// text; NumberPattern validates the normalized ticket reference for the type.
type TicketType struct {
	Key           string
	Label         string
	Category      Category
	Synonyms      []string
	NumberPattern *regexp.Regexp
	NumberHint    string
}

// ticketTypes is the fixed table of recognised penalty types, in declaration
// order.  Declaration order is the tie-break for ambiguous input: the first
// type with a matching synonym wins, and within one type longer synonyms are
// tried before shorter ones so "charge certificate" is never swallowed by
// "charge".
var ticketTypes = []TicketType{
	{
		Key:      "pcn",
		Label:    "Council Penalty Charge Notice (PCN)",
		Category: CategoryPCN,
		Synonyms: []string{"penalty charge notice", "council parking ticket", "parking fine", "parking ticket", "pcn", "1"},
		// Two letters followed by eight digits or letters, e.g. "WK12345678".
		NumberPattern: regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{8}$`),
		NumberHint:    "two letters followed by eight characters, e.g. WK12345678",
	},
	{
		Key:           "fpn",
		Label:         "Police Fixed Penalty Notice (FPN)",
		Category:      CategoryFPN,
		Synonyms:      []string{"fixed penalty notice", "police ticket", "police fine", "endorsable", "fpn", "2"},
		NumberPattern: regexp.MustCompile(`^[A-Z0-9]{8,14}$`),
		NumberHint:    "8 to 14 letters and digits",
	},
	{
		Key:           "bus_lane",
		Label:         "Bus Lane PCN",
		Category:      CategoryPCN,
		Synonyms:      []string{"bus lane fine", "bus lane ticket", "bus lane", "bus gate", "3"},
		NumberPattern: regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{8}$`),
		NumberHint:    "two letters followed by eight characters",
	},
	{
		Key:      "congestion",
		Label:    "Congestion Charge PCN",
		Category: CategoryTFL,
		Synonyms: []string{"congestion charge", "congestion zone", "c-charge", "congestion", "4"},
		// TfL references are purely numeric.
		NumberPattern: regexp.MustCompile(`^[0-9]{10}$`),
		NumberHint:    "a 10-digit number",
	},
	{
		Key:           "ulez",
		Label:         "ULEZ / Clean Air Zone PCN",
		Category:      CategoryTFL,
		Synonyms:      []string{"clean air zone", "low emission", "caz", "ulez", "5"},
		NumberPattern: regexp.MustCompile(`^[0-9]{10}$`),
		NumberHint:    "a 10-digit number",
	},
	{
		Key:           "moving_traffic",
		Label:         "Moving Traffic Contravention PCN",
		Category:      CategoryPCN,
		Synonyms:      []string{"moving traffic", "yellow box", "box junction", "banned turn", "no entry", "6"},
		NumberPattern: regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{8}$`),
		NumberHint:    "two letters followed by eight characters",
	},
	{
		Key:           "private",
		Label:         "Private Parking Charge Notice",
		Category:      CategoryPrivate,
		Synonyms:      []string{"private parking charge", "parking charge notice", "private land", "car park operator", "private", "7"},
		NumberPattern: regexp.MustCompile(`^[A-Z0-9]{6,12}$`),
		NumberHint:    "6 to 12 letters and digits",
	},
	{
		Key:           "charge_certificate",
		Label:         "Charge Certificate (TEC)",
		Category:      CategoryTEC,
		Synonyms:      []string{"charge certificate", "increased charge", "8"},
		NumberPattern: regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{8}$`),
		NumberHint:    "the PCN reference on the certificate",
	},
	{
		Key:           "order_of_recovery",
		Label:         "Order for Recovery (TEC)",
		Category:      CategoryTEC,
		Synonyms:      []string{"order for recovery", "order of recovery", "traffic enforcement centre", "county court", "bailiff", "enforcement agent", "tec", "9"},
		NumberPattern: regexp.MustCompile(`^[A-Z0-9]{8,14}$`),
		NumberHint:    "the claim or PCN reference on the order",
	},
	{
		Key:           "dvla",
		Label:         "DVLA Penalty (tax / SORN / insurance)",
		Category:      CategoryDVLA,
		Synonyms:      []string{"road tax", "vehicle tax", "sorn", "untaxed", "no insurance", "dvla", "10"},
		NumberPattern: regexp.MustCompile(`^[A-Z0-9]{6,14}$`),
		NumberHint:    "the reference from the DVLA letter",
	},
}

// TicketTypes returns the fixed table in declaration order.  The returned
// slice must not be modified.
func TicketTypes() []TicketType {
	return ticketTypes
}

// TicketTypeByKey looks up a type by its key.
func TicketTypeByKey(key string) (TicketType, bool) {
	for _, tt := range ticketTypes {
		if tt.Key == key {
			return tt, true
		}
	}
	return TicketType{}, false
}

// MatchTicketType classifies free text against the synonym table.
// Types are scanned in declaration order; within a type, longer synonyms are
// tried first.  The first hit wins.
func MatchTicketType(input string) (TicketType, bool) {
	text := strings.ToLower(strings.TrimSpace(input))
	if text == "" {
		return TicketType{}, false
	}
	for _, tt := range ticketTypes {
		syns := make([]string, len(tt.Synonyms))
		copy(syns, tt.Synonyms)
		sort.Slice(syns, func(i, j int) bool { return len(syns[i]) > len(syns[j]) })
		for _, syn := range syns {
			if len(syn) <= 2 {
				// Pure selector tokens ("1".."10", short codes) must match the
				// whole input, not a substring of it.
				if text == syn {
					return tt, true
				}
				continue
			}
			if strings.Contains(text, syn) {
				return tt, true
			}
		}
	}
	return TicketType{}, false
}
