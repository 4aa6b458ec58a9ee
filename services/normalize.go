package services

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"moonhem/models"
	"moonhem/utils"
)

// Alias-priority tables for the varying field names the listing API has
// used across backend versions. For every field the first defined value
// wins; order is load-bearing.
var (
	listingIDKeys    = []string{"id", "listing_id"}
	realtorKeys      = []string{"realtor_id", "realtor"}
	addressKeys      = []string{"address", "street", "location", "title"}
	cityKeys         = []string{"city", "municipality", "area", "region", "address_city"}
	priceKeys        = []string{"price", "list_price", "asking_price"}
	roomKeys         = []string{"rooms", "room_count", "number_of_rooms", "rum", "room", "roomcount"}
	livingAreaKeys   = []string{"living_area", "boarea", "area_living", "area"}
	lotSizeKeys      = []string{"lot_size", "plot_area", "area_plot"}
	yearBuiltKeys    = []string{"year_built", "built_year"}
	descriptionKeys  = []string{"description", "summary"}
	propertyTypeKeys = []string{"property_type", "property_type_name", "type"}
	imageKeys        = []string{"image_url", "cover_image_url", "image", "main_image_url"}
)

// fallbackImages is the fixed placeholder rotation for listings without
// an image, indexed by the record's position in its batch.
var fallbackImages = []string{
	"https://images.unsplash.com/photo-1505691938895-1758d7feb511?auto=format&fit=crop&w=800&q=80",
	"https://images.unsplash.com/photo-1505693416388-ac5ce068fe85?auto=format&fit=crop&w=800&q=80",
	"https://images.unsplash.com/photo-1493663284031-b7e3aefcae8e?auto=format&fit=crop&w=800&q=80",
	"https://images.unsplash.com/photo-1502005097973-6a7082348e28?auto=format&fit=crop&w=800&q=80",
}

// agentAvatars is the placeholder rotation for the agent directory.
var agentAvatars = []string{
	"https://images.unsplash.com/photo-1524504388940-b1c1722653e1?auto=format&fit=crop&w=240&q=80",
	"https://images.unsplash.com/photo-1544723795-3fb6469f5b39?auto=format&fit=crop&w=240&q=80",
	"https://images.unsplash.com/photo-1531123897727-8f129e1688ce?auto=format&fit=crop&w=240&q=80",
}

// syntheticIDSpace namespaces the SHA-1 UUIDs derived for records the
// API returned without an identifier.
var syntheticIDSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("moonhem/listing"))

// Normalizer maps heterogeneous raw API records into canonical structs.
// It never fails: unusable values degrade to zero values or documented
// defaults instead of errors.
type Normalizer struct {
	logger *utils.Logger
}

// NewNormalizer creates a Normalizer with the given logger.
func NewNormalizer(logger *utils.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Listings normalizes a fetched batch in order. The batch index feeds
// the placeholder-image rotation, so two different batches may give the
// same listing different placeholders.
func (n *Normalizer) Listings(raw []models.RawRecord) []*models.Listing {
	out := make([]*models.Listing, 0, len(raw))
	for idx, r := range raw {
		out = append(out, n.listing(r, idx))
	}
	n.logger.Debug("[normalize] %d listings normalized", len(out))
	return out
}

func (n *Normalizer) listing(r models.RawRecord, idx int) *models.Listing {
	id := firstString(r, listingIDKeys)
	if id == "" {
		id = syntheticID(r)
		n.logger.Debug("[normalize] record %d has no id, assigned %s", idx, id)
	}

	img := firstString(r, imageKeys)
	if img == "" {
		img = fallbackImages[idx%len(fallbackImages)]
	}

	desc := firstString(r, descriptionKeys)
	if desc == "" {
		desc = "No description added yet."
	}

	addr := firstString(r, addressKeys)
	if addr == "" {
		addr = "Unknown address"
	}

	ptype := firstString(r, propertyTypeKeys)
	if ptype == "" {
		ptype = "home"
	}

	return &models.Listing{
		ID:           id,
		RealtorID:    int64(firstNumber(r, realtorKeys)),
		Address:      addr,
		City:         firstString(r, cityKeys),
		Price:        firstNumber(r, priceKeys),
		Rooms:        firstNumber(r, roomKeys),
		LivingArea:   firstNumber(r, livingAreaKeys),
		LotSize:      firstNumber(r, lotSizeKeys),
		YearBuilt:    int(firstNumber(r, yearBuiltKeys)),
		Description:  desc,
		PropertyType: ptype,
		ImageURL:     img,
	}
}

// Agents normalizes the /users payload into directory entries.
func (n *Normalizer) Agents(raw []models.RawRecord) []*models.Agent {
	out := make([]*models.Agent, 0, len(raw))
	for idx, r := range raw {
		name := strings.TrimSpace(strings.TrimSpace(firstString(r, []string{"first_name"})) + " " +
			strings.TrimSpace(firstString(r, []string{"surname"})))
		if name == "" {
			name = "Moonhem Agent"
		}

		id := int64(firstNumber(r, []string{"id"}))
		if id == 0 {
			id = int64(idx)
		}

		out = append(out, &models.Agent{
			ID:     id,
			Name:   name,
			Email:  firstString(r, []string{"mail", "email"}),
			Phone:  firstString(r, []string{"phone_number"}),
			Agency: firstString(r, []string{"company_name", "agency"}),
			City:   firstString(r, []string{"city"}),
			Sales:  int(firstNumber(r, []string{"sales"})),
			RoleID: int64(firstNumber(r, []string{"role_id"})),
			Role:   firstString(r, []string{"role", "role_name"}),
			Avatar: agentAvatars[idx%len(agentAvatars)],
		})
	}
	n.logger.Debug("[normalize] %d users normalized", len(out))
	return out
}

// realtorRoleID is the role the seed data assigns to brokers.
const realtorRoleID = 2

// FilterRealtors keeps the entries that look like realtors. When the
// role heuristic matches nobody the full set is returned, so the
// directory never comes up empty over role-less payloads.
func FilterRealtors(agents []*models.Agent) []*models.Agent {
	realtors := make([]*models.Agent, 0, len(agents))
	for _, a := range agents {
		if a.RoleID == realtorRoleID || a.Role == "Realtor" || a.Role == "Broker" {
			realtors = append(realtors, a)
		}
	}
	if len(realtors) == 0 {
		return agents
	}
	return realtors
}

// firstString resolves the first defined alias to a string. Defined
// means present and non-null; an empty string still wins its slot.
func firstString(r models.RawRecord, keys []string) string {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		return asString(v)
	}
	return ""
}

// firstNumber resolves the first defined alias and coerces it to a
// finite non-negative number. Anything unusable yields 0.
func firstNumber(r models.RawRecord, keys []string) float64 {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		return numberOrZero(v)
	}
	return 0
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	}
	return ""
}

func numberOrZero(v any) float64 {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case json.Number:
		n, _ = t.Float64()
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0
	}
	return n
}

// syntheticID derives a deterministic pseudo-identifier from the
// record's serialized content. json.Marshal sorts map keys, so equal
// records always hash alike.
func syntheticID(r models.RawRecord) string {
	payload, err := json.Marshal(r)
	if err != nil {
		payload = []byte{}
	}
	return models.SyntheticIDPrefix + uuid.NewSHA1(syntheticIDSpace, payload).String()
}
