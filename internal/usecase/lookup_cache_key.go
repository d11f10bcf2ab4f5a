package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Family names a group of cached lookups invalidated together.
type Family string

const (
	FamilyKKS          Family = "kks"
	FamilyOrganization Family = "organizations"
	FamilyProgramType  Family = "program_types"
	FamilyProgram      Family = "programs"
	FamilyWorker       Family = "workers"
	FamilyDocument     Family = "documents"
)

const (
	lookupKeyPrefix          = "lookup:"
	recommendationKeyPrefix  = "programs:recommended:"
	RecommendationKeyPattern = recommendationKeyPrefix + "*"
)

func LookupKey(f Family) string {
	return lookupKeyPrefix + string(f)
}

// RecommendationKey hashes the normalized id set, so {3,1} and {1,3,3} share
// an entry.
func RecommendationKey(ids []int64) string {
	norm := NormalizeCriterionIDs(ids)
	parts := make([]string, 0, len(norm))
	for _, id := range norm {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	b, _ := json.Marshal(struct {
		KKSIDs string `json:"kks_ids"`
	}{KKSIDs: strings.Join(parts, ",")})
	sum := sha256.Sum256(b)
	return recommendationKeyPrefix + hex.EncodeToString(sum[:])
}

// NormalizeCriterionIDs drops non-positive ids, dedupes and sorts.
func NormalizeCriterionIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func keysFor(families []Family) []string {
	out := make([]string, 0, len(families))
	for _, f := range families {
		if f == FamilyDocument {
			continue
		}
		out = append(out, LookupKey(f))
	}
	return out
}

// Recommendations join programs, their passports, organizations and types.
func touchesRecommendations(families []Family) bool {
	for _, f := range families {
		switch f {
		case FamilyKKS, FamilyProgram, FamilyOrganization, FamilyProgramType:
			return true
		}
	}
	return false
}
