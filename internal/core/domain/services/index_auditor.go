package services

import (
	"fmt"
	"maps"
	"slices"

	"github.com/lao-sha/fissionmall/internal/pkg/records"
)

// Problems reported by IndexAuditor.
const (
	ProblemOrphanMember    = "bucket lists a key with no record"
	ProblemWrongBucket     = "record is filed under a bucket its fields do not select"
	ProblemMissingMember   = "record is absent from the bucket its fields select"
	ProblemDuplicateMember = "bucket lists the same key twice"
)

// Violation is one broken index entry.
type Violation struct {
	Kind    string `json:"kind"`
	Family  string `json:"family"`
	Bucket  string `json:"bucket"`
	Key     string `json:"key"`
	Problem string `json:"problem"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s.%s[%s] %s: %s", v.Kind, v.Family, v.Bucket, v.Key, v.Problem)
}

// IndexAuditor verifies that every index bucket of a snapshot agrees with the
// records of the same snapshot.
//
// For each family:
//   - every listed key resolves to a record
//   - no bucket lists a key twice
//   - every record whose fields select a bucket is listed in it
//   - a record is listed in no other bucket, unless the family is open
//
// Open families, such as the token account index, also hold keys filed by
// operations other than create, so only the last rule is relaxed for them.
type IndexAuditor struct{}

func NewIndexAuditor() IndexAuditor {
	return IndexAuditor{}
}

// Audit returns the violations of every snapshot in a stable order. An empty
// result means the indexes are consistent.
func (a IndexAuditor) Audit(snapshots ...records.Snapshot) []Violation {
	var violations []Violation
	for _, snapshot := range snapshots {
		keys := make(map[string]struct{}, len(snapshot.Keys))
		for _, key := range snapshot.Keys {
			keys[key] = struct{}{}
		}
		for _, family := range snapshot.Families {
			violations = append(violations, a.auditFamily(snapshot.Kind, keys, family)...)
		}
	}
	return violations
}

func (a IndexAuditor) auditFamily(kind string, keys map[string]struct{}, family records.FamilySnapshot) []Violation {
	var violations []Violation
	report := func(bucket, key, problem string) {
		violations = append(violations, Violation{
			Kind:    kind,
			Family:  family.Name,
			Bucket:  bucket,
			Key:     key,
			Problem: problem,
		})
	}

	for _, bucket := range slices.Sorted(maps.Keys(family.Buckets)) {
		seen := make(map[string]bool)
		for _, key := range family.Buckets[bucket] {
			if seen[key] {
				report(bucket, key, ProblemDuplicateMember)
				continue
			}
			seen[key] = true

			if _, ok := keys[key]; !ok {
				report(bucket, key, ProblemOrphanMember)
				continue
			}
			if !family.Open && family.Expected[key] != bucket {
				report(bucket, key, ProblemWrongBucket)
			}
		}
	}

	for _, key := range slices.Sorted(maps.Keys(family.Expected)) {
		bucket := family.Expected[key]
		if !slices.Contains(family.Buckets[bucket], key) {
			report(bucket, key, ProblemMissingMember)
		}
	}
	return violations
}
