package usecase

import (
	"context"
	"strings"

	"orderflow/internal/domain/entities"
	"orderflow/internal/domain/lifecycle"
	"orderflow/internal/usecase/interfaces"
	"orderflow/pkg/logger"

	"github.com/shopspring/decimal"
)

// SuggestionInput is a substitute-product proposal.
type SuggestionInput struct {
	ProductRef string
	Price      decimal.Decimal
	Note       string
}

// ILineUseCase exposes the line resolution engine.
type ILineUseCase interface {
	MarkInStock(ctx context.Context, actor entities.Actor, lineID string) (entities.LineItem, error)
	ReportShortage(ctx context.Context, actor entities.Actor, lineID string, availableQty decimal.Decimal, note string) (entities.LineItem, error)
	RecordAvailabilityResponse(ctx context.Context, lineID string, resp lifecycle.AvailabilityResponse) (entities.LineItem, error)
	ReissueShortage(ctx context.Context, actor entities.Actor, lineID, supplierRef string) (entities.LineItem, error)

	ClaimDecision(ctx context.Context, actor entities.Actor, lineID string) (entities.ClaimToken, error)
	AcceptAvailability(ctx context.Context, actor entities.Actor, lineID string) (entities.LineItem, error)
	RejectAvailability(ctx context.Context, actor entities.Actor, lineID string) (entities.LineItem, error)
	MarkNotAvailable(ctx context.Context, actor entities.Actor, lineID string) (entities.LineItem, error)
	CancelLine(ctx context.Context, actor entities.Actor, lineID string) (entities.LineItem, error)

	AddSuggestion(ctx context.Context, actor entities.Actor, lineID string, in SuggestionInput) (entities.Suggestion, error)
	DiscardSuggestion(ctx context.Context, actor entities.Actor, lineID, suggestionID string) (entities.LineItem, error)
	AcceptSuggestion(ctx context.Context, actor entities.Actor, lineID, suggestionID string) (entities.LineItem, entities.LineItem, error)

	AttachImage(ctx context.Context, actor entities.Actor, lineID, contentType string, data []byte) (entities.Image, error)
	SetChecked(ctx context.Context, actor entities.Actor, lineID string, checked bool) (entities.LineItem, error)
	EditCheckedQuantity(ctx context.Context, actor entities.Actor, lineID string, qty decimal.Decimal) (entities.LineItem, error)
}

type LineUseCase struct {
	*engine
	claims IClaimGuard
}

var _ ILineUseCase = (*LineUseCase)(nil)

func NewLineUseCase(repo interfaces.IOrderRepository, claims IClaimGuard, notifier interfaces.INotifier, supplier interfaces.ISupplierGateway) *LineUseCase {
	return &LineUseCase{engine: newEngine(repo, notifier, supplier), claims: claims}
}

// lineStep applies fn to one line and returns the stored line.
func (u *LineUseCase) lineStep(ctx context.Context, op string, actor entities.Actor, lineID string, fn func(s snapshot, l entities.LineItem) (outcome, error)) (entities.LineItem, error) {
	if err := validActor(actor); err != nil {
		return entities.LineItem{}, err
	}
	s, err := u.applyToLine(logger.WithActorID(ctx, actor.ID), op, lineID, fn)
	if err != nil {
		return entities.LineItem{}, err
	}
	l, _ := s.line(strings.TrimSpace(lineID))
	return l, nil
}

func single(l entities.LineItem) interfaces.Changeset {
	return interfaces.Changeset{Lines: []entities.LineItem{l}}
}

func (u *LineUseCase) MarkInStock(ctx context.Context, actor entities.Actor, lineID string) (entities.LineItem, error) {
	return u.lineStep(ctx, "markInStock", actor, lineID, func(s snapshot, l entities.LineItem) (outcome, error) {
		next, err := lifecycle.MarkInStock(s.order, l, actor, u.now())
		if err != nil {
			return outcome{}, err
		}
		if next.Flag == l.Flag {
			return outcome{}, nil
		}
		return outcome{changes: single(next)}, nil
	})
}

func (u *LineUseCase) ReportShortage(ctx context.Context, actor entities.Actor, lineID string, availableQty decimal.Decimal, note string) (entities.LineItem, error) {
	return u.lineStep(ctx, "reportShortage", actor, lineID, func(s snapshot, l entities.LineItem) (outcome, error) {
		next, q, err := lifecycle.ReportShortage(s.order, l, actor, availableQty, note, u.now())
		if err != nil {
			return outcome{}, err
		}
		notices := []lifecycle.Notice{{Role: entities.RoleSalesman, OrderID: s.order.ID, Message: "shortage reported on " + l.ProductRef}}
		return outcome{changes: single(next), notices: notices, queries: []lifecycle.ShortageQuery{q}}, nil
	})
}

// RecordAvailabilityResponse is driven by the supplier side, not a human actor.
func (u *LineUseCase) RecordAvailabilityResponse(ctx context.Context, lineID string, resp lifecycle.AvailabilityResponse) (entities.LineItem, error) {
	if resp.Qty.IsNegative() {
		return entities.LineItem{}, ErrInvalidResponse
	}
	s, err := u.applyToLine(ctx, "recordAvailability", lineID, func(s snapshot, l entities.LineItem) (outcome, error) {
		next, err := lifecycle.RecordAvailabilityResponse(s.order, l, resp, u.now())
		if err != nil {
			return outcome{}, err
		}
		msg := "supplier has no stock for " + l.ProductRef
		if next.Supplier.Status == entities.SupplierAvailable {
			msg = "supplier offers " + next.Supplier.OfferedQty.String() + " of " + l.ProductRef
		}
		notices := []lifecycle.Notice{{Role: entities.RoleSalesman, OrderID: s.order.ID, Message: msg}}
		return outcome{changes: single(next), notices: notices}, nil
	})
	if err != nil {
		return entities.LineItem{}, err
	}
	l, _ := s.line(strings.TrimSpace(lineID))
	return l, nil
}

func (u *LineUseCase) ReissueShortage(ctx context.Context, actor entities.Actor, lineID, supplierRef string) (entities.LineItem, error) {
	return u.lineStep(ctx, "reissueShortage", actor, lineID, func(s snapshot, l entities.LineItem) (outcome, error) {
		next, q, err := lifecycle.ReissueShortage(s.order, l, actor, supplierRef, u.now())
		if err != nil {
			return outcome{}, err
		}
		return outcome{changes: single(next), queries: []lifecycle.ShortageQuery{q}}, nil
	})
}

func (u *LineUseCase) ClaimDecision(ctx context.Context, actor entities.Actor, lineID string) (entities.ClaimToken, error) {
	return u.claims.TryClaim(ctx, entities.ClaimResource{Kind: entities.ClaimLine, ID: lineID}, actor.Role, actor)
}

// decide runs a shortage decision. The decision sets DecisionOwner in the same
// versioned commit as the flag change, so a refused decision leaves the line
// unclaimed and a competing decider loses the version race and then sees
// AlreadyClaimed on reload.
func (u *LineUseCase) decide(ctx context.Context, op string, actor entities.Actor, lineID string, fn func(s snapshot, l entities.LineItem) (outcome, error)) (entities.LineItem, error) {
	return u.lineStep(ctx, op, actor, lineID, fn)
}

func (u *LineUseCase) AcceptAvailability(ctx context.Context, actor entities.Actor, lineID string) (entities.LineItem, error) {
	return u.decide(ctx, "acceptAvailability", actor, lineID, func(s snapshot, l entities.LineItem) (outcome, error) {
		next, notices, err := lifecycle.AcceptAvailability(s.order, l, actor, u.now())
		if err != nil {
			return outcome{}, err
		}
		return outcome{changes: single(next), notices: notices}, nil
	})
}

func (u *LineUseCase) RejectAvailability(ctx context.Context, actor entities.Actor, lineID string) (entities.LineItem, error) {
	return u.decide(ctx, "rejectAvailability", actor, lineID, func(s snapshot, l entities.LineItem) (outcome, error) {
		next, err := lifecycle.RejectAvailability(s.order, l, actor, u.now())
		if err != nil {
			return outcome{}, err
		}
		notices := []lifecycle.Notice{{Role: entities.RoleAdmin, OrderID: s.order.ID, Message: "availability rejected for " + l.ProductRef}}
		return outcome{changes: single(next), notices: notices}, nil
	})
}

func (u *LineUseCase) MarkNotAvailable(ctx context.Context, actor entities.Actor, lineID string) (entities.LineItem, error) {
	return u.decide(ctx, "markNotAvailable", actor, lineID, func(s snapshot, l entities.LineItem) (outcome, error) {
		next, err := lifecycle.MarkNotAvailable(s.order, l, actor, u.now())
		if err != nil {
			return outcome{}, err
		}
		return outcome{changes: single(next)}, nil
	})
}

func (u *LineUseCase) CancelLine(ctx context.Context, actor entities.Actor, lineID string) (entities.LineItem, error) {
	return u.lineStep(ctx, "cancelLine", actor, lineID, func(s snapshot, l entities.LineItem) (outcome, error) {
		next, err := lifecycle.CancelLine(s.order, l, actor, u.now())
		if err != nil {
			return outcome{}, err
		}
		return outcome{changes: single(next)}, nil
	})
}

func (u *LineUseCase) AddSuggestion(ctx context.Context, actor entities.Actor, lineID string, in SuggestionInput) (entities.Suggestion, error) {
	var created entities.Suggestion
	_, err := u.lineStep(ctx, "addSuggestion", actor, lineID, func(s snapshot, l entities.LineItem) (outcome, error) {
		next, sug, err := lifecycle.AddSuggestion(s.order, l, actor, in.ProductRef, in.Price, in.Note, u.now())
		if err != nil {
			return outcome{}, err
		}
		created = sug
		notices := []lifecycle.Notice{{Role: entities.RoleSalesman, OrderID: s.order.ID, Message: "substitute proposed for " + l.ProductRef}}
		return outcome{changes: single(next), notices: notices}, nil
	})
	if err != nil {
		return entities.Suggestion{}, err
	}
	return created, nil
}

func (u *LineUseCase) DiscardSuggestion(ctx context.Context, actor entities.Actor, lineID, suggestionID string) (entities.LineItem, error) {
	if strings.TrimSpace(suggestionID) == "" {
		return entities.LineItem{}, ErrInvalidSuggestionID
	}
	return u.lineStep(ctx, "discardSuggestion", actor, lineID, func(s snapshot, l entities.LineItem) (outcome, error) {
		next, err := lifecycle.DiscardSuggestion(s.order, l, actor, strings.TrimSpace(suggestionID), u.now())
		if err != nil {
			return outcome{}, err
		}
		return outcome{changes: single(next)}, nil
	})
}

// AcceptSuggestion returns the superseded original and its replacement.
func (u *LineUseCase) AcceptSuggestion(ctx context.Context, actor entities.Actor, lineID, suggestionID string) (entities.LineItem, entities.LineItem, error) {
	if strings.TrimSpace(suggestionID) == "" {
		return entities.LineItem{}, entities.LineItem{}, ErrInvalidSuggestionID
	}
	var replacementID string
	if err := validActor(actor); err != nil {
		return entities.LineItem{}, entities.LineItem{}, err
	}
	s, err := u.applyToLine(logger.WithActorID(ctx, actor.ID), "acceptSuggestion", lineID, func(s snapshot, l entities.LineItem) (outcome, error) {
		original, replacement, err := lifecycle.AcceptSuggestion(s.order, l, actor, strings.TrimSpace(suggestionID), u.now())
		if err != nil {
			return outcome{}, err
		}
		replacementID = replacement.ID
		notices := []lifecycle.Notice{{
			Role:    lifecycle.DownstreamRole(s.order),
			OrderID: s.order.ID,
			Message: l.ProductRef + " replaced by " + replacement.ProductRef,
		}}
		return outcome{
			changes: interfaces.Changeset{Lines: []entities.LineItem{original}, NewLines: []entities.LineItem{replacement}},
			notices: notices,
		}, nil
	})
	if err != nil {
		return entities.LineItem{}, entities.LineItem{}, err
	}
	original, _ := s.line(strings.TrimSpace(lineID))
	replacement, _ := s.line(replacementID)
	return original, replacement, nil
}

func (u *LineUseCase) AttachImage(ctx context.Context, actor entities.Actor, lineID, contentType string, data []byte) (entities.Image, error) {
	if len(data) == 0 {
		return entities.Image{}, ErrInvalidImage
	}
	var attached entities.Image
	_, err := u.lineStep(ctx, "attachImage", actor, lineID, func(s snapshot, l entities.LineItem) (outcome, error) {
		next, img, err := lifecycle.AttachImage(s.order, l, actor, contentType, data, u.now())
		if err != nil {
			return outcome{}, err
		}
		attached = img
		return outcome{changes: single(next)}, nil
	})
	if err != nil {
		return entities.Image{}, err
	}
	return attached, nil
}

func (u *LineUseCase) SetChecked(ctx context.Context, actor entities.Actor, lineID string, checked bool) (entities.LineItem, error) {
	return u.lineStep(ctx, "setChecked", actor, lineID, func(s snapshot, l entities.LineItem) (outcome, error) {
		next, err := lifecycle.SetChecked(s.order, l, actor, checked, u.now())
		if err != nil {
			return outcome{}, err
		}
		if next.IsChecked == l.IsChecked {
			return outcome{}, nil
		}
		return outcome{changes: single(next)}, nil
	})
}

func (u *LineUseCase) EditCheckedQuantity(ctx context.Context, actor entities.Actor, lineID string, qty decimal.Decimal) (entities.LineItem, error) {
	if qty.IsNegative() {
		return entities.LineItem{}, ErrInvalidQuantity
	}
	return u.lineStep(ctx, "editCheckedQuantity", actor, lineID, func(s snapshot, l entities.LineItem) (outcome, error) {
		next, edited, err := lifecycle.EditCheckedQuantity(s.order, l, actor, qty, u.now())
		if err != nil {
			return outcome{}, err
		}
		if !edited {
			return outcome{}, nil
		}
		return outcome{changes: single(next)}, nil
	})
}
