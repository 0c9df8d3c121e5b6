package repository

import (
	"github.com/rentdesk/rentdesk/internal/domain/contract"
	"github.com/rentdesk/rentdesk/internal/domain/installment"
	"github.com/rentdesk/rentdesk/internal/logger"
	"github.com/rentdesk/rentdesk/internal/postgres"
	postgresRepo "github.com/rentdesk/rentdesk/internal/repository/postgres"
)

func NewContractRepository(db *postgres.DB, logger *logger.Logger) contract.Repository {
	return postgresRepo.NewContractRepository(db, logger)
}

func NewInstallmentRepository(db *postgres.DB, logger *logger.Logger) installment.Repository {
	return postgresRepo.NewInstallmentRepository(db, logger)
}
