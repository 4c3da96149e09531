package domain

import "fmt"

// DocumentStatus is the absolute workflow state of a document. The string
// value is the stable code persisted in history rows; display names live in
// StatusDisplayNames. Codes are the only representation that ever reaches
// storage.
type DocumentStatus string

const (
	StatusDraft                DocumentStatus = "DRAFT"
	StatusRegistered           DocumentStatus = "REGISTERED"
	StatusDistributed          DocumentStatus = "DISTRIBUTED"
	StatusDeptAssigned         DocumentStatus = "DEPT_ASSIGNED"
	StatusSpecialistProcessing DocumentStatus = "SPECIALIST_PROCESSING"
	StatusSpecialistSubmitted  DocumentStatus = "SPECIALIST_SUBMITTED"
	StatusPendingApproval      DocumentStatus = "PENDING_APPROVAL"
	StatusLeaderReviewing      DocumentStatus = "LEADER_REVIEWING"
	StatusLeaderCommented      DocumentStatus = "LEADER_COMMENTED"
	StatusLeaderApproved       DocumentStatus = "LEADER_APPROVED"
	StatusHeaderDeptReviewing  DocumentStatus = "HEADER_DEPARTMENT_REVIEWING"
	StatusHeaderDeptCommented  DocumentStatus = "HEADER_DEPARTMENT_COMMENTED"
	StatusHeaderDeptApproved   DocumentStatus = "HEADER_DEPARTMENT_APPROVED"
	StatusFormatCorrection     DocumentStatus = "FORMAT_CORRECTION"
	StatusFormatCorrected      DocumentStatus = "FORMAT_CORRECTED"
	StatusCompleted            DocumentStatus = "COMPLETED"
	StatusPublished            DocumentStatus = "PUBLISHED"
	StatusRejected             DocumentStatus = "REJECTED"
	StatusArchived             DocumentStatus = "ARCHIVED"
)

// AllStatuses lists every absolute status.
var AllStatuses = []DocumentStatus{
	StatusDraft,
	StatusRegistered,
	StatusDistributed,
	StatusDeptAssigned,
	StatusSpecialistProcessing,
	StatusSpecialistSubmitted,
	StatusPendingApproval,
	StatusLeaderReviewing,
	StatusLeaderCommented,
	StatusLeaderApproved,
	StatusHeaderDeptReviewing,
	StatusHeaderDeptCommented,
	StatusHeaderDeptApproved,
	StatusFormatCorrection,
	StatusFormatCorrected,
	StatusCompleted,
	StatusPublished,
	StatusRejected,
	StatusArchived,
}

// StatusDisplayNames maps each status code to its display label.
var StatusDisplayNames = map[DocumentStatus]string{
	StatusDraft:                "Draft",
	StatusRegistered:           "Registered",
	StatusDistributed:          "Distributed",
	StatusDeptAssigned:         "Assigned to Department",
	StatusSpecialistProcessing: "Specialist Processing",
	StatusSpecialistSubmitted:  "Specialist Submitted",
	StatusPendingApproval:      "Pending Approval",
	StatusLeaderReviewing:      "Leadership Reviewing",
	StatusLeaderCommented:      "Leadership Commented",
	StatusLeaderApproved:       "Leadership Approved",
	StatusHeaderDeptReviewing:  "Head Department Reviewing",
	StatusHeaderDeptCommented:  "Head Department Commented",
	StatusHeaderDeptApproved:   "Head Department Approved",
	StatusFormatCorrection:     "Format Correction Requested",
	StatusFormatCorrected:      "Format Corrected",
	StatusCompleted:            "Completed",
	StatusPublished:            "Published",
	StatusRejected:             "Rejected",
	StatusArchived:             "Archived",
}

// DisplayName returns the human-readable label for the status.
func (s DocumentStatus) DisplayName() string {
	if name, ok := StatusDisplayNames[s]; ok {
		return name
	}
	return string(s)
}

// StatusFromCode resolves a persisted status code. Unknown codes are an
// error, never a silent mis-decode.
func StatusFromCode(code string) (DocumentStatus, error) {
	s := DocumentStatus(code)
	if _, ok := StatusDisplayNames[s]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatusCode, code)
	}
	return s, nil
}

// TrackingStatus is the role-relative classification of a document for a
// specific user, distinct from the absolute DocumentStatus.
type TrackingStatus string

const (
	TrackingNotProcessed TrackingStatus = "NOT_PROCESSED"
	TrackingInProcess    TrackingStatus = "IN_PROCESS"
	TrackingProcessed    TrackingStatus = "PROCESSED"
)

// DocumentKind is the closed set of document variants.
type DocumentKind string

const (
	KindIncoming DocumentKind = "incoming"
	KindOutgoing DocumentKind = "outgoing"
	KindInternal DocumentKind = "internal"
)

// ValidDocumentKinds gates request input.
var ValidDocumentKinds = map[DocumentKind]bool{
	KindIncoming: true,
	KindOutgoing: true,
	KindInternal: true,
}

// HistoryAction tags a history row with the kind of mutation it records.
type HistoryAction string

const (
	ActionStatusChange       HistoryAction = "STATUS_CHANGE"
	ActionAssignment         HistoryAction = "ASSIGNMENT"
	ActionDocumentTypeChange HistoryAction = "DOCUMENT_TYPE_CHANGE"
	ActionFeedback           HistoryAction = "FEEDBACK"
)

// NotificationType categorizes outbound notifications.
type NotificationType string

const (
	NotificationStatusChange NotificationType = "status_change"
	NotificationAssignment   NotificationType = "assignment"
	NotificationFeedback     NotificationType = "feedback"
	NotificationApproval     NotificationType = "approval"
	NotificationPublication  NotificationType = "publication"
)

// Role names as stored in users.roles.
const (
	RoleAdmin          = "admin"
	RoleClerk          = "clerk"
	RoleSpecialist     = "specialist"
	RoleAssistant      = "assistant"
	RoleBureauLeader   = "bureau_leader"
	RoleDeputyBureau   = "deputy_bureau_leader"
	RoleDepartmentHead = "department_head"
	RoleDeputyDeptHead = "deputy_department_head"
)

// RoleGroup is the closed set of classification groups. A user belongs to
// exactly one group, resolved in precedence order: clerk, staff, bureau
// leader, department leader.
type RoleGroup int

const (
	RoleGroupNone RoleGroup = iota
	RoleGroupClerk
	RoleGroupStaff
	RoleGroupBureauLeader
	RoleGroupDepartmentLeader
)

// String returns the group's name.
func (g RoleGroup) String() string {
	switch g {
	case RoleGroupClerk:
		return "clerk"
	case RoleGroupStaff:
		return "staff"
	case RoleGroupBureauLeader:
		return "bureau_leader"
	case RoleGroupDepartmentLeader:
		return "department_leader"
	default:
		return "none"
	}
}

var (
	clerkRoles            = map[string]bool{RoleClerk: true}
	staffRoles            = map[string]bool{RoleSpecialist: true, RoleAssistant: true}
	bureauLeaderRoles     = map[string]bool{RoleBureauLeader: true, RoleDeputyBureau: true}
	departmentLeaderRoles = map[string]bool{RoleDepartmentHead: true, RoleDeputyDeptHead: true}
)

// ResolveRoleGroup maps a user's role-name set to its single classification
// group. First matching group in precedence order wins; a user whose roles
// span several groups is classified only by the earliest match.
func ResolveRoleGroup(roles []string) RoleGroup {
	groups := []struct {
		group   RoleGroup
		members map[string]bool
	}{
		{RoleGroupClerk, clerkRoles},
		{RoleGroupStaff, staffRoles},
		{RoleGroupBureauLeader, bureauLeaderRoles},
		{RoleGroupDepartmentLeader, departmentLeaderRoles},
	}
	for _, g := range groups {
		for _, r := range roles {
			if g.members[r] {
				return g.group
			}
		}
	}
	return RoleGroupNone
}

// HasLeaderRole reports whether any of the roles belongs to bureau leadership.
func HasLeaderRole(roles []string) bool {
	for _, r := range roles {
		if bureauLeaderRoles[r] {
			return true
		}
	}
	return false
}

// HasDepartmentHeadRole reports whether any of the roles is a department head role.
func HasDepartmentHeadRole(roles []string) bool {
	for _, r := range roles {
		if departmentLeaderRoles[r] {
			return true
		}
	}
	return false
}
