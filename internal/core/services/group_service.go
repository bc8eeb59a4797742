package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finbase/sepa_payments_app/internal/apperrors"
	"github.com/finbase/sepa_payments_app/internal/core/domain"
	portsrepo "github.com/finbase/sepa_payments_app/internal/core/ports/repositories"
	portssvc "github.com/finbase/sepa_payments_app/internal/core/ports/services"
	"github.com/finbase/sepa_payments_app/internal/dto"
	"github.com/finbase/sepa_payments_app/internal/middleware"
	"github.com/finbase/sepa_payments_app/internal/sepa"
)

// groupService is the payment batch processor: it assembles groups, assigns
// mandates to receivable payments and renders the journal's configured SEPA
// flavor into the group's message.
type groupService struct {
	groupRepo   portsrepo.GroupRepositoryFacade
	paymentRepo portsrepo.PaymentRepositoryFacade
	mandateRepo portsrepo.MandateRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
	partyRepo   portsrepo.PartyRepositoryFacade
}

// NewGroupService creates a new GroupService.
func NewGroupService(
	groupRepo portsrepo.GroupRepositoryFacade,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	mandateRepo portsrepo.MandateRepositoryFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
	partyRepo portsrepo.PartyRepositoryFacade,
) portssvc.GroupSvcFacade {
	return &groupService{
		groupRepo:   groupRepo,
		paymentRepo: paymentRepo,
		mandateRepo: mandateRepo,
		journalRepo: journalRepo,
		partyRepo:   partyRepo,
	}
}

// Ensure groupService implements the portssvc.GroupSvcFacade interface
var _ portssvc.GroupSvcFacade = (*groupService)(nil)

// CreateGroup assembles payments of one journal and direction into a new
// batch.
func (s *groupService) CreateGroup(ctx context.Context, req dto.CreateGroupRequest, creatorUserID string) (*domain.Group, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, req.JournalID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve journal %s: %w", req.JournalID, err)
	}

	now := time.Now().UTC()
	group := domain.Group{
		GroupID:   uuid.NewString(),
		JournalID: journal.JournalID,
		CompanyID: journal.CompanyID,
		Kind:      req.Kind,
		RecName:   req.RecName,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// Validate membership before any write.
	payments := make([]domain.Payment, 0, len(req.PaymentIDs))
	for _, paymentID := range req.PaymentIDs {
		payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve payment %s: %w", paymentID, err)
		}
		if payment.Kind != req.Kind {
			return nil, fmt.Errorf("%w: payment %q is %s, group is %s", apperrors.ErrValidation, payment.RecName(), payment.Kind, req.Kind)
		}
		if payment.JournalID != journal.JournalID {
			return nil, fmt.Errorf("%w: payment %q belongs to another journal", apperrors.ErrValidation, payment.RecName())
		}
		if payment.GroupID != nil {
			return nil, fmt.Errorf("%w: payment %q is already grouped", apperrors.ErrConflict, payment.RecName())
		}
		payments = append(payments, *payment)
	}

	if err := s.groupRepo.SaveGroup(ctx, group); err != nil {
		logger.Error("Failed to save group", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save group: %w", err)
	}
	for _, payment := range payments {
		if err := s.paymentRepo.UpdatePaymentGroup(ctx, payment.PaymentID, group.GroupID, creatorUserID); err != nil {
			return nil, fmt.Errorf("failed to attach payment %s to group: %w", payment.PaymentID, err)
		}
	}

	logger.Info("Group created", slog.String("group_id", group.GroupID), slog.Int("payments", len(payments)))
	return &group, nil
}

// GetGroupByID retrieves a group.
func (s *groupService) GetGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to find group %s: %w", groupID, err)
	}
	return group, nil
}

// ListGroupsByJournal lists a journal's groups, token-paginated.
func (s *groupService) ListGroupsByJournal(ctx context.Context, journalID string, params dto.ListGroupsParams) (*dto.ListGroupsResponse, error) {
	groups, nextToken, err := s.groupRepo.ListGroupsByJournal(ctx, journalID, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups of journal %s: %w", journalID, err)
	}
	responses := make([]dto.GroupResponse, len(groups))
	for i := range groups {
		responses[i] = dto.ToGroupResponse(&groups[i])
	}
	return &dto.ListGroupsResponse{
		Groups:    responses,
		NextToken: nextToken,
	}, nil
}

// ListGroupPayments lists the group's payments in their batch order.
func (s *groupService) ListGroupPayments(ctx context.Context, groupID string) ([]dto.PaymentResponse, error) {
	if _, err := s.groupRepo.FindGroupByID(ctx, groupID); err != nil {
		return nil, fmt.Errorf("failed to find group %s: %w", groupID, err)
	}
	payments, err := s.paymentRepo.ListPaymentsByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group payments: %w", err)
	}
	return dto.ToPaymentResponses(payments), nil
}

// ProcessGroup runs the batch. For receivable groups every payment without a
// mandate gets the party's first valid one; then the journal's flavor is
// rendered and the message stored on the group.
//
// Mandate assignments are written payment by payment, not as one all-or-
// nothing unit: a failure partway leaves earlier assignments in place within
// the surrounding transaction scope.
func (s *groupService) ProcessGroup(ctx context.Context, groupID string, userID string) (*domain.Group, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to find group %s: %w", groupID, err)
	}
	journal, err := s.journalRepo.FindJournalByID(ctx, group.JournalID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve journal %s: %w", group.JournalID, err)
	}
	payments, err := s.paymentRepo.ListPaymentsByGroup(ctx, group.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group payments: %w", err)
	}

	if group.Kind == domain.Receivable {
		if err := s.assignMandates(ctx, payments, userID); err != nil {
			return nil, err
		}
	}

	// Flavor resolution failures are configuration errors, nothing is stored.
	builder, err := sepa.BuilderFor(journal.FlavorFor(group.Kind))
	if err != nil {
		logger.Error("No SEPA template for group", slog.String("group_id", groupID), slog.String("kind", string(group.Kind)), slog.String("error", err.Error()))
		return nil, err
	}

	msg, err := s.buildMessage(ctx, group, journal, payments)
	if err != nil {
		return nil, err
	}

	rendered, err := builder.Build(*msg)
	if err != nil {
		return nil, fmt.Errorf("failed to render SEPA message: %w", err)
	}
	rendered = sepa.StripComments(rendered)

	if err := s.groupRepo.UpdateGroupMessage(ctx, group.GroupID, rendered, userID); err != nil {
		logger.Error("Failed to store group message", slog.String("error", err.Error()), slog.String("group_id", groupID))
		return nil, fmt.Errorf("failed to store group message: %w", err)
	}

	logger.Info("Group processed", slog.String("group_id", groupID), slog.Int("payments", len(payments)))
	group.Message = rendered
	group.LastUpdatedAt = time.Now().UTC()
	group.LastUpdatedBy = userID
	return group, nil
}

// assignMandates gives every mandate-less payment the first valid mandate of
// its party, in the party's mandate ordering. Assignments are persisted one
// payment at a time; validity is re-read per payment so a one-off mandate
// consumed earlier in the batch is not picked twice.
func (s *groupService) assignMandates(ctx context.Context, payments []domain.Payment, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	for i := range payments {
		payment := &payments[i]
		if payment.MandateID != nil {
			continue
		}

		mandate, err := s.firstValidMandate(ctx, payment.PartyID)
		if err != nil {
			return err
		}
		if mandate == nil {
			logger.Warn("No valid mandate for payment", slog.String("payment_id", payment.PaymentID), slog.String("party_id", payment.PartyID))
			return fmt.Errorf("%w: no valid mandate for payment %q", apperrors.ErrValidation, payment.RecName())
		}

		if err := s.paymentRepo.UpdatePaymentMandate(ctx, payment.PaymentID, mandate.MandateID, userID); err != nil {
			return fmt.Errorf("failed to assign mandate to payment %s: %w", payment.PaymentID, err)
		}
		payment.MandateID = &mandate.MandateID
	}
	return nil
}

// firstValidMandate is an ordered linear scan over the party's mandates with
// early exit on the first valid one; nil when the party has none.
func (s *groupService) firstValidMandate(ctx context.Context, partyID string) (*domain.Mandate, error) {
	mandates, _, err := s.mandateRepo.ListMandatesByParty(ctx, partyID, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list mandates of party %s: %w", partyID, err)
	}
	if len(mandates) == 0 {
		return nil, nil
	}

	ids := make([]string, len(mandates))
	for i, m := range mandates {
		ids[i] = m.MandateID
	}
	hasPayments, err := s.mandateRepo.HasPayments(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate payments for mandates: %w", err)
	}

	for i := range mandates {
		mandates[i].HasPayments = hasPayments[mandates[i].MandateID]
		if mandates[i].IsValid() {
			return &mandates[i], nil
		}
	}
	return nil, nil
}

// buildMessage assembles the flavor-independent message input from the
// group's payments, the company party as initiating party and the journal's
// originating bank account.
func (s *groupService) buildMessage(ctx context.Context, group *domain.Group, journal *domain.PaymentJournal, payments []domain.Payment) (*sepa.Message, error) {
	company, err := s.partyRepo.FindCompanyByID(ctx, group.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve company %s: %w", group.CompanyID, err)
	}
	companyParty, err := s.partyRepo.FindPartyByID(ctx, company.PartyID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve company party %s: %w", company.PartyID, err)
	}

	if journal.SEPABankAccountNumberID == nil {
		return nil, fmt.Errorf("%w: journal %q has no SEPA bank account number", apperrors.ErrUnimplemented, journal.Name)
	}
	companyAccount, err := s.accountInfo(ctx, *journal.SEPABankAccountNumberID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	msg := &sepa.Message{
		MessageID:        uuid.NewString(),
		CreationDateTime: now,
		RequestedDate:    requestedDate(payments, now),
		Method:           journal.SEPAMethod(),
		InitiatingParty:  sepa.PartyInfo{Name: companyParty.Name},
		CompanyAccount:   companyAccount,
		CreditorSchemeID: companyParty.SEPACreditorIdentifier,
	}

	partyNames := make(map[string]string)
	partyAccounts := make(map[string]sepa.AccountInfo)

	for i := range payments {
		payment := &payments[i]

		name, ok := partyNames[payment.PartyID]
		if !ok {
			party, err := s.partyRepo.FindPartyByID(ctx, payment.PartyID)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve party %s: %w", payment.PartyID, err)
			}
			name = party.Name
			partyNames[payment.PartyID] = name
		}

		tx := sepa.Transaction{
			EndToEndID:   payment.EndToEndID(),
			Amount:       payment.Amount,
			Currency:     payment.CurrencyCode,
			ChargeBearer: payment.ChargeBearer(),
			Counterparty: sepa.PartyInfo{Name: name},
		}

		if group.Kind == domain.Receivable {
			if payment.MandateID == nil {
				return nil, fmt.Errorf("%w: no valid mandate for payment %q", apperrors.ErrValidation, payment.RecName())
			}
			mandate, err := s.mandateRepo.FindMandateByID(ctx, *payment.MandateID)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve mandate %s: %w", *payment.MandateID, err)
			}
			linked, err := s.mandateRepo.CountPaymentsByMandate(ctx, mandate.MandateID)
			if err != nil {
				return nil, fmt.Errorf("failed to count payments of mandate %s: %w", mandate.MandateID, err)
			}
			tx.MandateID = mandate.RecName()
			tx.SequenceType = string(mandate.SequenceTypeFor(linked))
			if mandate.SignatureDate != nil {
				tx.SignatureDate = *mandate.SignatureDate
			}
			if mandate.AccountNumberID != nil {
				account, err := s.accountInfo(ctx, *mandate.AccountNumberID)
				if err != nil {
					return nil, err
				}
				tx.CounterpartyAccount = account
			}
		} else {
			account, ok := partyAccounts[payment.PartyID]
			if !ok {
				account, err = s.firstIBANAccount(ctx, payment.PartyID)
				if err != nil {
					return nil, err
				}
				partyAccounts[payment.PartyID] = account
			}
			tx.CounterpartyAccount = account
		}

		msg.Transactions = append(msg.Transactions, tx)
	}

	return msg, nil
}

// accountInfo resolves a bank account number into the IBAN/BIC pair used in
// the file.
func (s *groupService) accountInfo(ctx context.Context, numberID string) (sepa.AccountInfo, error) {
	number, err := s.partyRepo.FindBankAccountNumberByID(ctx, numberID)
	if err != nil {
		return sepa.AccountInfo{}, fmt.Errorf("failed to resolve account number %s: %w", numberID, err)
	}
	account, err := s.partyRepo.FindBankAccountByID(ctx, number.BankAccountID)
	if err != nil {
		return sepa.AccountInfo{}, fmt.Errorf("failed to resolve bank account %s: %w", number.BankAccountID, err)
	}
	return sepa.AccountInfo{IBAN: number.Number, BIC: account.BIC}, nil
}

// firstIBANAccount returns the party's first iban-typed number, the account
// SEPA transfers are credited to.
func (s *groupService) firstIBANAccount(ctx context.Context, partyID string) (sepa.AccountInfo, error) {
	accounts, numbers, err := s.partyRepo.ListBankAccountsByParty(ctx, partyID)
	if err != nil {
		return sepa.AccountInfo{}, fmt.Errorf("failed to list bank accounts of party %s: %w", partyID, err)
	}
	for _, account := range accounts {
		for _, number := range numbers[account.BankAccountID] {
			if number.Type == domain.NumberIBAN {
				return sepa.AccountInfo{IBAN: number.Number, BIC: account.BIC}, nil
			}
		}
	}
	return sepa.AccountInfo{}, fmt.Errorf("%w: party %s has no IBAN bank account number", apperrors.ErrValidation, partyID)
}

// requestedDate picks the latest payment due date as the requested
// execution/collection date, falling back to now for undated payments.
func requestedDate(payments []domain.Payment, now time.Time) time.Time {
	latest := time.Time{}
	for _, p := range payments {
		if p.Date.After(latest) {
			latest = p.Date
		}
	}
	if latest.IsZero() {
		return now
	}
	return latest
}

// GetGroupFile returns the export filename and UTF-8 bytes of the generated
// message; not-found while no message has been generated yet.
func (s *groupService) GetGroupFile(ctx context.Context, groupID string) (string, []byte, error) {
	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to find group %s: %w", groupID, err)
	}
	if group.Message == "" {
		return "", nil, fmt.Errorf("%w: group %q has no generated message", apperrors.ErrNotFound, group.RecName)
	}
	return group.Filename(), group.File(), nil
}
