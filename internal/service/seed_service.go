package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/cryptovlab/coursework-api/internal/dto"
	"github.com/cryptovlab/coursework-api/internal/repository"
)

var (
	// ErrSeedDisabled indicates the seeding tools are disabled by configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedNotEmpty indicates assignments already exist, so seeding would duplicate content.
	ErrSeedNotEmpty = errors.New("assignment collection is not empty")
)

// SeedService loads the bundled sample cryptography assignments into an
// empty store.
type SeedService interface {
	SeedSampleAssignments(ctx context.Context, createdBy string) (int, error)
}

type seedService struct {
	assignments    AssignmentService
	assignmentRepo repository.AssignmentRepository
	enabled        bool
	logger         zerolog.Logger
}

// NewSeedService constructs a seeding service.
func NewSeedService(assignments AssignmentService, assignmentRepo repository.AssignmentRepository, enabled bool, logger zerolog.Logger) SeedService {
	return &seedService{
		assignments:    assignments,
		assignmentRepo: assignmentRepo,
		enabled:        enabled,
		logger:         logger.With().Str("component", "seed_service").Logger(),
	}
}

func (s *seedService) SeedSampleAssignments(ctx context.Context, createdBy string) (int, error) {
	if !s.enabled {
		return 0, ErrSeedDisabled
	}

	existing, err := s.assignmentRepo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, ErrSeedNotEmpty
	}

	created := 0
	for _, sample := range sampleAssignments {
		sample.CreatedBy = createdBy
		if _, err := s.assignments.Create(ctx, sample); err != nil {
			return created, err
		}
		created++
	}

	s.logger.Info().Int("created", created).Msg("sample assignments seeded")

	return created, nil
}

var sampleAssignments = []dto.AssignmentCreateRequest{
	{
		Title:        "Caesar Cipher Analysis",
		Description:  "Analyze and break a Caesar cipher using frequency analysis",
		LabModule:    "shift_cipher",
		Difficulty:   "easy",
		Points:       10,
		DueDays:      7,
		Instructions: "Use the provided ciphertext to determine the shift value and decrypt the message. Show your work including frequency analysis.",
		Resources:    []string{"Frequency Analysis Guide", "Caesar Cipher Reference"},
	},
	{
		Title:        "Mono-Alphabetic Cipher Challenge",
		Description:  "Decrypt a mono-alphabetic substitution cipher",
		LabModule:    "mono_alphabetic",
		Difficulty:   "medium",
		Points:       15,
		DueDays:      10,
		Instructions: "Decrypt the given ciphertext using frequency analysis and pattern recognition. Document your methodology.",
		Resources:    []string{"Letter Frequency Tables", "Pattern Analysis Guide"},
	},
	{
		Title:        "AES Implementation Project",
		Description:  "Implement basic AES encryption/decryption",
		LabModule:    "aes_algorithm",
		Difficulty:   "hard",
		Points:       25,
		DueDays:      14,
		Instructions: "Implement AES-128 encryption and decryption. Test with provided test vectors.",
		Resources:    []string{"AES Specification", "Implementation Guide", "Test Vectors"},
	},
	{
		Title:        "Hash Function Security Analysis",
		Description:  "Analyze the security properties of different hash functions",
		LabModule:    "hash_function",
		Difficulty:   "medium",
		Points:       20,
		DueDays:      12,
		Instructions: "Compare MD5, SHA-1, and SHA-256. Discuss vulnerabilities and use cases.",
		Resources:    []string{"Hash Function Comparison", "Security Analysis Framework"},
	},
}
