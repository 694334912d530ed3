package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vivasst/risk_survey/biz/dal/model"
	"gorm.io/gorm"
)

// starter catalog shipped with a fresh installation. Titles are stable keys:
// Seed never duplicates an entry that already exists.
var starterLibrary = []model.HazardLibrary{
	{Type: model.AgentPhysical, Title: "Ruido continuo", Hazard: "Ruido continuo ou intermitente", HazardousEvent: "Exposicao prolongada acima do limite", PotentialDamage: "Perda auditiva induzida por ruido", AllowsQuantitative: true},
	{Type: model.AgentPhysical, Title: "Calor", Hazard: "Exposicao ao calor", HazardousEvent: "Trabalho proximo a fontes de calor", PotentialDamage: "Desidratacao, exaustao termica", AllowsQuantitative: true},
	{Type: model.AgentPhysical, Title: "Vibracao de corpo inteiro", Hazard: "Vibracao transmitida ao corpo", HazardousEvent: "Operacao de veiculos e equipamentos", PotentialDamage: "Lesoes na coluna vertebral", AllowsQuantitative: true},
	{Type: model.AgentChemical, Title: "Poeiras minerais", Hazard: "Inalacao de poeiras minerais", HazardousEvent: "Corte e perfuracao de materiais", PotentialDamage: "Pneumoconioses", AllowsQuantitative: true},
	{Type: model.AgentChemical, Title: "Vapores organicos", Hazard: "Inalacao de vapores organicos", HazardousEvent: "Manuseio de solventes", PotentialDamage: "Intoxicacao, dermatites", AllowsQuantitative: true},
	{Type: model.AgentBiological, Title: "Agentes biologicos", Hazard: "Contato com microorganismos", HazardousEvent: "Manipulacao de residuos ou fluidos", PotentialDamage: "Infeccoes", AllowsQuantitative: false},
	{Type: model.AgentErgonomic, Title: "Levantamento manual de cargas", Hazard: "Esforco fisico intenso", HazardousEvent: "Movimentacao manual de cargas", PotentialDamage: "Lesoes musculoesqueleticas", AllowsQuantitative: false},
	{Type: model.AgentErgonomic, Title: "Postura inadequada", Hazard: "Postura forcada prolongada", HazardousEvent: "Trabalho em posicao estatica", PotentialDamage: "Dores lombares e cervicais", AllowsQuantitative: false},
	{Type: model.AgentAccident, Title: "Trabalho em altura", Hazard: "Queda de nivel diferente", HazardousEvent: "Atividade acima de dois metros", PotentialDamage: "Fraturas, morte", AllowsQuantitative: false},
	{Type: model.AgentAccident, Title: "Choque eletrico", Hazard: "Contato com partes energizadas", HazardousEvent: "Intervencao em instalacoes eletricas", PotentialDamage: "Queimaduras, fibrilacao", AllowsQuantitative: false},
	{Type: model.AgentPsychosocial, Title: "Sobrecarga de trabalho", Hazard: "Demanda excessiva", HazardousEvent: "Jornadas prolongadas sem pausas", PotentialDamage: "Estresse ocupacional", AllowsQuantitative: false},
}

// starter exposure references for the measurement types that ship enabled.
var starterReferences = []model.Reference{
	{MeasurementType: "noise", ReferenceValue: 85, Unit: "dB(A)", ProximityPercent: 10},
	{MeasurementType: "heat", ReferenceValue: 28, Unit: "C IBUTG", ProximityPercent: 10},
	{MeasurementType: "dust", ReferenceValue: 3, Unit: "mg/m3", ProximityPercent: 15},
}

// Seed installs the default classification ranges, the starter hazard catalog
// and the default exposure references on an empty database. Safe to call on
// every startup: existing rows are left untouched.
func (s *Service) Seed(ctx context.Context) error {
	return s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := s.logic.referenceDAO.CountRanges(ctx, tx)
		if err != nil {
			return err
		}
		if count == 0 {
			for _, r := range defaultRanges {
				r.ID = uuid.New().String()
				r.Active = true
				if err := s.logic.referenceDAO.SaveRange(ctx, tx, &r); err != nil {
					return err
				}
			}
		}

		for i := range starterLibrary {
			entry := starterLibrary[i]
			existing, err := s.logic.libraryDAO.FindByTypeTitle(ctx, tx, entry.Type, entry.Title)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if existing != nil {
				continue
			}
			entry.ID = uuid.New().String()
			entry.Origin = model.LibraryOriginLibrary
			entry.Active = true
			if err := s.logic.libraryDAO.Create(ctx, tx, &entry); err != nil {
				return err
			}
		}

		for i := range starterReferences {
			ref := starterReferences[i]
			existing, err := s.logic.referenceDAO.FindActiveByType(ctx, tx, ref.MeasurementType)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if existing != nil {
				continue
			}
			ref.ID = uuid.New().String()
			ref.Active = true
			if err := s.logic.referenceDAO.Create(ctx, tx, &ref); err != nil {
				return err
			}
		}
		return nil
	})
}
