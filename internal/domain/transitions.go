package domain

// statusTransitions is the adjacency table governing legal status changes.
// It is total over the taxonomy: every status has an entry, and a terminal
// status maps to an empty set. Several statuses are reachable along more
// than one path (REJECTED from both review branches, for example).
var statusTransitions = map[DocumentStatus][]DocumentStatus{
	StatusDraft:       {StatusRegistered},
	StatusRegistered:  {StatusDistributed},
	StatusDistributed: {StatusDeptAssigned, StatusHeaderDeptReviewing, StatusRegistered},

	StatusDeptAssigned:         {StatusSpecialistProcessing, StatusDistributed},
	StatusSpecialistProcessing: {StatusSpecialistSubmitted, StatusPendingApproval},
	StatusSpecialistSubmitted:  {StatusLeaderReviewing, StatusHeaderDeptReviewing},
	StatusPendingApproval:      {StatusLeaderReviewing, StatusHeaderDeptReviewing},

	StatusLeaderReviewing: {StatusLeaderApproved, StatusLeaderCommented, StatusRejected},
	StatusLeaderCommented: {StatusSpecialistProcessing, StatusLeaderApproved},
	StatusLeaderApproved:  {StatusCompleted, StatusPublished, StatusFormatCorrection},

	StatusHeaderDeptReviewing: {StatusHeaderDeptApproved, StatusHeaderDeptCommented, StatusRejected},
	StatusHeaderDeptCommented: {StatusSpecialistProcessing, StatusHeaderDeptApproved},
	StatusHeaderDeptApproved:  {StatusLeaderReviewing, StatusCompleted, StatusPublished, StatusFormatCorrection},

	StatusFormatCorrection: {StatusFormatCorrected},
	StatusFormatCorrected:  {StatusPendingApproval, StatusPublished},

	StatusCompleted: {StatusArchived},
	StatusPublished: {StatusCompleted, StatusArchived},
	StatusRejected:  {StatusDraft, StatusArchived},
	StatusArchived:  {},
}

// CanTransition reports whether a direct transition from one status to
// another is legal.
func CanTransition(from, to DocumentStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Successors returns the legal next statuses from the given status. The
// returned slice is a copy.
func Successors(from DocumentStatus) []DocumentStatus {
	next := statusTransitions[from]
	out := make([]DocumentStatus, len(next))
	copy(out, next)
	return out
}
