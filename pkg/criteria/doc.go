// Package criteria implements the plausibility checks of a road system.
//
// # Criteria
//
// A [Criterion] is an observer of segments. Every change, addition or
// removal of a segment it is subscribed to re-evaluates that segment
// incrementally and publishes or retracts [Violation] records. Four kinds
// exist:
//
//   - [CompletenessCriterion]: a data attribute is unset
//   - [ValueCriterion]: a numeric attribute lies outside its [Ranges] entry
//   - [CompatibilityCriterion]: an attribute disagrees with a connected segment
//   - [ConnectorCriterion]: a connection joins connector types that do not
//     accept each other
//
// Pairwise criteria compare both argument orders of their
// [ValidationStrategy] and record one violation per failing pair of
// segments, no matter which side triggered the check.
//
// # Managers
//
// [CriteriaManager] owns the active criteria of one
// [github.com/matzehuels/roadnet/pkg/roadsys.RoadSystem]; it subscribes them
// to every segment and points them at a shared [ViolationManager], the
// ordered set of published violations:
//
//	rs := roadsys.New(nil, nil)
//	m := criteria.NewCriteriaManager(rs, nil, nil, nil)
//	c, _ := m.CreateCriterionOfType(criteria.CriterionConnector)
//	c.SetSegmentTypes(roadsys.SegmentTypes...)
//	for _, v := range m.ViolationManager().Violations() {
//	    fmt.Println(v)
//	}
//
// Like the road system, criteria are not safe for concurrent use.
package criteria
