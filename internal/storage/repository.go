package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("storage: not found")
	ErrDuplicate = errors.New("storage: duplicate")
)

type Repository interface {
	CreateStaff(ctx context.Context, in StaffMember) error
	GetStaff(ctx context.Context, id string) (StaffMember, error)
	UpdateStaff(ctx context.Context, in StaffMember) error
	DeleteStaff(ctx context.Context, id string) error
	ListStaff(ctx context.Context, filter ListFilter) ([]StaffMember, error)

	CreateDocument(ctx context.Context, in Document) error
	GetDocument(ctx context.Context, id string) (Document, error)
	UpdateDocument(ctx context.Context, in Document) error
	DeleteDocument(ctx context.Context, id string) error
	ListDocuments(ctx context.Context, filter ListFilter) ([]Document, error)

	CreateCleaningTask(ctx context.Context, in CleaningTask) error
	GetCleaningTask(ctx context.Context, id string) (CleaningTask, error)
	UpdateCleaningTask(ctx context.Context, in CleaningTask) error
	DeleteCleaningTask(ctx context.Context, id string) error
	ListCleaningTasks(ctx context.Context, filter ListFilter) ([]CleaningTask, error)

	CreateCleaningEntry(ctx context.Context, in CleaningEntry) error
	GetCleaningEntry(ctx context.Context, id string) (CleaningEntry, error)
	UpdateCleaningEntry(ctx context.Context, in CleaningEntry) error
	DeleteCleaningEntry(ctx context.Context, id string) error
	ListCleaningEntries(ctx context.Context, filter CleaningEntryFilter) ([]CleaningEntry, error)

	CreateTraining(ctx context.Context, in TrainingItem) error
	GetTraining(ctx context.Context, id string) (TrainingItem, error)
	UpdateTraining(ctx context.Context, in TrainingItem) error
	DeleteTraining(ctx context.Context, id string) error
	ListTraining(ctx context.Context, filter TrainingListFilter) ([]TrainingItem, error)

	CreateSafeguarding(ctx context.Context, in SafeguardingRecord) error
	GetSafeguarding(ctx context.Context, id string) (SafeguardingRecord, error)
	UpdateSafeguarding(ctx context.Context, in SafeguardingRecord) error
	DeleteSafeguarding(ctx context.Context, id string) error
	ListSafeguarding(ctx context.Context, filter ListFilter) ([]SafeguardingRecord, error)

	CreateTemperature(ctx context.Context, in TemperatureLog) error
	GetTemperature(ctx context.Context, id string) (TemperatureLog, error)
	UpdateTemperature(ctx context.Context, in TemperatureLog) error
	DeleteTemperature(ctx context.Context, id string) error
	ListTemperatures(ctx context.Context, filter TemperatureListFilter) ([]TemperatureLog, error)

	CreateRPLog(ctx context.Context, in RPLog) error
	GetRPLog(ctx context.Context, id string) (RPLog, error)
	GetRPLogByDate(ctx context.Context, date string) (RPLog, error)
	UpdateRPLog(ctx context.Context, in RPLog) error
	DeleteRPLog(ctx context.Context, id string) error
	ListRPLogs(ctx context.Context, filter ListFilter) ([]RPLog, error)

	CreateIncident(ctx context.Context, in Incident) error
	GetIncident(ctx context.Context, id string) (Incident, error)
	DeleteIncident(ctx context.Context, id string) error
	ListIncidents(ctx context.Context, filter ListFilter) ([]Incident, error)

	CreateTrainingLog(ctx context.Context, in TrainingLog) error
	GetTrainingLog(ctx context.Context, id string) (TrainingLog, error)
	DeleteTrainingLog(ctx context.Context, id string) error
	ListTrainingLogs(ctx context.Context, filter ListFilter) ([]TrainingLog, error)

	CreateAssignedTask(ctx context.Context, in AssignedTask) error
	GetAssignedTask(ctx context.Context, id string) (AssignedTask, error)
	UpdateAssignedTask(ctx context.Context, in AssignedTask) error
	DeleteAssignedTask(ctx context.Context, id string) error
	ListAssignedTasks(ctx context.Context, filter AssignedTaskFilter) ([]AssignedTask, error)
}
