package service

import (
	"healthlearn_backend/internal/model"
)

// GateKind names the unblocking action a blocked viewer is offered.
type GateKind string

const (
	GateLogin   GateKind = "login"
	GateProfile GateKind = "profile"
)

// GateInput collects everything the gate decision depends on. It is rebuilt
// from scratch on every request; nothing here is cached.
type GateInput struct {
	AuthLoading      bool `json:"authLoading"`
	IsProtected      bool `json:"is_protected"`
	IsAuthenticated  bool `json:"isAuthenticated"`
	RequiresProfile  bool `json:"requires_professional_profile"`
	ProfileCompleted bool `json:"isProfileCompleted"`
}

// GateDecision is the outcome: either no block, or a block naming the one
// action that lifts it.
type GateDecision struct {
	Show bool     `json:"show"`
	Kind GateKind `json:"kind,omitempty"`
}

func (d GateDecision) Outcome() string {
	if !d.Show {
		return "no-block"
	}
	return "block-for-" + string(d.Kind)
}

// AccessService decides whether course content renders in full or behind a
// blocking overlay. It holds no state; Evaluate is safe to call on every
// request with fresh inputs.
type AccessService struct{}

func NewAccessService() *AccessService {
	return &AccessService{}
}

// Evaluate implements the gate decision table, first match wins:
//
//	authLoading                                      -> no block
//	not protected                                    -> no block
//	protected, anonymous                             -> block for login
//	protected, authenticated, no profile required    -> no block
//	protected, authenticated, profile incomplete     -> block for profile
//	protected, authenticated, profile complete       -> no block
//
// The authLoading row must stay first: while auth status is unknown the page
// renders normally rather than flashing a gate that may not apply.
func (s *AccessService) Evaluate(in GateInput) GateDecision {
	if in.AuthLoading {
		return GateDecision{Show: false}
	}
	if !in.IsProtected {
		return GateDecision{Show: false}
	}
	if !in.IsAuthenticated {
		return GateDecision{Show: true, Kind: GateLogin}
	}
	if in.RequiresProfile && !in.ProfileCompleted {
		return GateDecision{Show: true, Kind: GateProfile}
	}
	return GateDecision{Show: false}
}

// InputForCourse derives the gate input for a request. A nil user means the
// request carried no (valid) token. The server always knows the auth state,
// so AuthLoading is false here; the field exists for clients that evaluate
// the same table while their session is still resolving.
func (s *AccessService) InputForCourse(course *model.Course, user *model.User) GateInput {
	in := GateInput{
		IsProtected:     true,
		RequiresProfile: true,
	}
	if course != nil {
		in.IsProtected = course.IsProtected
		in.RequiresProfile = course.RequiresProfile
	}
	if user != nil {
		in.IsAuthenticated = true
		in.ProfileCompleted = user.ProfileCompleted
	}
	return in
}
