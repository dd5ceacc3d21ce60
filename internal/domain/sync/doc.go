// Package sync contains the ERP Synchronization bounded context.
// This context pulls financial and operational data from heterogeneous
// dealership ERP back-ends and drives the normalization pipeline.
//
// Key concepts:
//   - ErpAdapter: Port interface for connecting to dealership ERPs (CDK Drive, Reynolds ERA)
//   - AdapterFactory: Constructs a live adapter for an ERP type and connection config
//   - TenantConnection: Entity holding one dealer's ERP endpoint and encrypted credentials
//   - SyncJob: Append-only audit record of one pull-normalize-upsert cycle
//   - Domain records: Schema-agnostic rows (department financials, expenses, metrics)
//     returned by adapters after physical-to-logical column translation
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (implementations) are in the infrastructure layer
package sync
