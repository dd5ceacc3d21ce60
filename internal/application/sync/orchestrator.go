package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dealersync/backend/internal/domain/reporting"
	"github.com/dealersync/backend/internal/domain/shared"
	syncdomain "github.com/dealersync/backend/internal/domain/sync"
)

// Orchestrator drives one sync run end to end: create a job, pull records
// through a tenant's adapter, upsert them into the normalized financial
// model, and finalize the job. It is the sole writer of sync jobs, reporting
// periods and the financial fact tables.
//
// Runs are synchronous within the caller (HTTP request or scheduler tick);
// there is no intra-run parallelism and no automatic retry. Each trigger
// creates a new, independent job row.
type Orchestrator struct {
	connRepo   syncdomain.TenantConnectionRepository
	jobRepo    syncdomain.SyncJobRepository
	periodRepo reporting.ReportingPeriodRepository
	dfRepo     reporting.DepartmentFinancialRepository
	eaRepo     reporting.ExpenseAllocationRepository
	omRepo     reporting.OperationalMetricRepository
	factory    syncdomain.AdapterFactory
	cipher     syncdomain.CredentialCipher
	logger     *zap.Logger
}

// NewOrchestrator creates a sync orchestrator
func NewOrchestrator(
	connRepo syncdomain.TenantConnectionRepository,
	jobRepo syncdomain.SyncJobRepository,
	periodRepo reporting.ReportingPeriodRepository,
	dfRepo reporting.DepartmentFinancialRepository,
	eaRepo reporting.ExpenseAllocationRepository,
	omRepo reporting.OperationalMetricRepository,
	factory syncdomain.AdapterFactory,
	cipher syncdomain.CredentialCipher,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		connRepo:   connRepo,
		jobRepo:    jobRepo,
		periodRepo: periodRepo,
		dfRepo:     dfRepo,
		eaRepo:     eaRepo,
		omRepo:     omRepo,
		factory:    factory,
		cipher:     cipher,
		logger:     logger.Named("sync-orchestrator"),
	}
}

// TriggerSync runs one sync for (tenant, connection, period).
//
// Validation and configuration problems fail before a job row exists.
// Once the job is created, every later failure transitions it to FAILED
// and records the message; rows already upserted stay committed, there is
// no encompassing rollback. The returned job is non-nil whenever a job row
// was created, including on failure.
func (o *Orchestrator) TriggerSync(ctx context.Context, tenantID, connectionID uuid.UUID, periodStart, periodEnd time.Time, kind syncdomain.JobKind) (*syncdomain.SyncJob, error) {
	if periodStart.After(periodEnd) {
		return nil, syncdomain.ErrInvalidPeriod
	}

	conn, err := o.connRepo.FindByIDForTenant(ctx, tenantID, connectionID)
	if err != nil {
		return nil, err
	}
	if !conn.IsActive {
		return nil, syncdomain.ErrConnectionInactive
	}
	if !conn.ErpType.IsValid() {
		return nil, fmt.Errorf("%w: %q", syncdomain.ErrUnknownErpType, conn.ErpType)
	}

	// Decrypt and validate before any job row exists, so configuration
	// problems never leave an audit record claiming a run started.
	password, err := o.cipher.Decrypt(conn.EncryptedPassword)
	if err != nil {
		return nil, fmt.Errorf("%w: stored credentials cannot be decrypted", syncdomain.ErrIncompleteConfig)
	}
	config := conn.Config(password)
	if err := config.Validate(); err != nil {
		return nil, err
	}

	job, err := syncdomain.NewSyncJob(tenantID, connectionID, kind, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	if err := o.jobRepo.Save(ctx, job); err != nil {
		return nil, err
	}

	o.logger.Info("sync started",
		zap.String("job_id", job.ID.String()),
		zap.String("tenant_id", tenantID.String()),
		zap.String("erp_type", conn.ErpType.String()),
		zap.Time("period_start", periodStart),
		zap.Time("period_end", periodEnd),
		zap.String("kind", string(kind)),
	)

	adapter, err := o.factory.GetAdapter(ctx, conn.ErpType, config)
	if err != nil {
		return o.failJob(ctx, job, conn, err)
	}
	defer func() {
		if cerr := adapter.Close(); cerr != nil {
			o.logger.Warn("adapter close failed", zap.String("job_id", job.ID.String()), zap.Error(cerr))
		}
	}()

	financials, err := adapter.GetDepartmentFinancials(ctx, periodStart, periodEnd)
	if err != nil {
		return o.failJob(ctx, job, conn, err)
	}
	expenses, err := adapter.GetExpenseAllocations(ctx, periodStart, periodEnd)
	if err != nil {
		return o.failJob(ctx, job, conn, err)
	}
	metrics, err := adapter.GetOperationalMetrics(ctx, periodStart, periodEnd)
	if err != nil {
		return o.failJob(ctx, job, conn, err)
	}

	period, err := o.resolvePeriod(ctx, job, conn)
	if err != nil {
		return o.failJob(ctx, job, conn, err)
	}

	created, err := o.upsertFinancials(ctx, tenantID, period.ID, financials)
	if err != nil {
		return o.failJob(ctx, job, conn, err)
	}
	for _, record := range expenses {
		ea := reporting.NewExpenseAllocation(tenantID, period.ID, record.Category, record.Department, record.Amount, record.AllocationMethod)
		if err := o.eaRepo.Insert(ctx, ea); err != nil {
			return o.failJob(ctx, job, conn, err)
		}
		created++
	}
	for _, record := range metrics {
		om := reporting.NewOperationalMetric(tenantID, period.ID, record.Name, record.Category, record.Value, record.Unit)
		if err := o.omRepo.Insert(ctx, om); err != nil {
			return o.failJob(ctx, job, conn, err)
		}
		created++
	}

	processed := len(financials) + len(expenses) + len(metrics)
	if err := job.Complete(processed, created); err != nil {
		return o.failJob(ctx, job, conn, err)
	}
	if err := o.jobRepo.Save(ctx, job); err != nil {
		return job, err
	}

	conn.RecordSyncSuccess(time.Now())
	if err := o.connRepo.Save(ctx, conn); err != nil {
		o.logger.Warn("failed to record sync success on connection",
			zap.String("connection_id", conn.ID.String()), zap.Error(err))
	}

	o.logger.Info("sync completed",
		zap.String("job_id", job.ID.String()),
		zap.Int("records_processed", processed),
		zap.Int("records_created", created),
	)
	return job, nil
}

// resolvePeriod finds or creates the reporting period for the job's window.
// Re-syncs of the same window reuse the existing row and relink provenance.
func (o *Orchestrator) resolvePeriod(ctx context.Context, job *syncdomain.SyncJob, conn *syncdomain.TenantConnection) (*reporting.ReportingPeriod, error) {
	period, err := o.periodRepo.FindByWindow(ctx, job.TenantID, job.PeriodStart, job.PeriodEnd)
	switch {
	case err == nil:
		period.Refresh(job.ID, conn.ErpType.String())
	case errors.Is(err, shared.ErrNotFound):
		period = reporting.NewReportingPeriod(job.TenantID, job.PeriodStart, job.PeriodEnd, conn.ErpType.String(), job.ID)
	default:
		return nil, err
	}

	if err := o.periodRepo.Save(ctx, period); err != nil {
		return nil, err
	}
	return period, nil
}

// upsertFinancials writes department rows keyed by (period, department):
// existing rows get new base figures with derived fields recomputed, missing
// departments get fresh rows. Returns the number of inserts.
func (o *Orchestrator) upsertFinancials(ctx context.Context, tenantID, periodID uuid.UUID, records []syncdomain.DepartmentFinancialRecord) (int, error) {
	created := 0
	for _, record := range records {
		existing, err := o.dfRepo.FindByPeriodAndDepartment(ctx, periodID, record.Department)
		switch {
		case err == nil:
			existing.ApplyBase(record.GrossSales, record.Discounts, record.CostOfGoodsSold, record.UnitsSold)
			if err := o.dfRepo.Save(ctx, existing); err != nil {
				return created, err
			}
		case errors.Is(err, shared.ErrNotFound):
			df := reporting.NewDepartmentFinancial(tenantID, periodID, record.Department,
				record.GrossSales, record.Discounts, record.CostOfGoodsSold, record.UnitsSold)
			if err := o.dfRepo.Save(ctx, df); err != nil {
				return created, err
			}
			created++
		default:
			return created, err
		}
	}
	return created, nil
}

// failJob transitions the job to FAILED, records the failure on the
// connection, and returns the job alongside the original error
func (o *Orchestrator) failJob(ctx context.Context, job *syncdomain.SyncJob, conn *syncdomain.TenantConnection, cause error) (*syncdomain.SyncJob, error) {
	now := time.Now()

	if err := job.Fail(cause.Error()); err != nil {
		o.logger.Error("could not transition job to failed",
			zap.String("job_id", job.ID.String()), zap.Error(err))
	}
	if err := o.jobRepo.Save(ctx, job); err != nil {
		o.logger.Error("failed to persist failed job",
			zap.String("job_id", job.ID.String()), zap.Error(err))
	}

	conn.RecordSyncFailure(now, cause.Error())
	if err := o.connRepo.Save(ctx, conn); err != nil {
		o.logger.Warn("failed to record sync failure on connection",
			zap.String("connection_id", conn.ID.String()), zap.Error(err))
	}

	o.logger.Error("sync failed",
		zap.String("job_id", job.ID.String()),
		zap.Error(cause),
	)
	return job, cause
}
