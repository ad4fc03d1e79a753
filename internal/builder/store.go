package builder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"resumescan/internal/errors"
	"resumescan/internal/types"
)

// DefaultStorageDir is where resume documents land when no directory is
// configured.
const DefaultStorageDir = "data/resumes"

// Section names accepted by the add/remove entry operations.
const (
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionCertifications = "certifications"
	SectionProjects       = "projects"
)

// Store manages editable resume documents. Documents live as one JSON file
// per resume under the storage directory, fronted by an in-memory cache.
// Every mutation persists before returning.
type Store struct {
	mu     sync.RWMutex
	dir    string
	cache  map[string]*types.ResumeBuilder
	logger *errors.Logger
}

// NewStore creates the storage directory if needed and returns a ready
// store.
func NewStore(dir string, logger *errors.Logger) (*Store, error) {
	if dir == "" {
		dir = DefaultStorageDir
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed,
			fmt.Sprintf("failed to create storage directory %s", dir), err)
	}
	return &Store{
		dir:    dir,
		cache:  make(map[string]*types.ResumeBuilder),
		logger: logger,
	}, nil
}

// Create starts a new empty resume document.
func (s *Store) Create(title string) (*types.ResumeBuilder, error) {
	if title == "" {
		title = "My Resume"
	}
	now := time.Now().UTC()
	resume := &types.ResumeBuilder{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(resume); err != nil {
		return nil, err
	}
	s.cache[resume.ID] = resume
	s.logger.Debug("Created resume", "resume_id", resume.ID, "title", title)
	return clone(resume), nil
}

// CreateFromParsed converts a parsed resume into an editable document.
func (s *Store) CreateFromParsed(parsed *types.Resume) (*types.ResumeBuilder, error) {
	now := time.Now().UTC()
	resume := &types.ResumeBuilder{
		ID:        uuid.NewString(),
		Title:     "Imported Resume",
		CreatedAt: now,
		UpdatedAt: now,
		Contact: &types.BuilderContact{
			FullName: parsed.Name,
			Email:    parsed.Contact.Email,
			Phone:    parsed.Contact.Phone,
			LinkedIn: parsed.Contact.LinkedIn,
			GitHub:   parsed.Contact.GitHub,
			Website:  parsed.Contact.Website,
			Location: parsed.Contact.Location,
		},
	}
	if parsed.Summary != "" {
		resume.Summary = &types.ProfessionalSummary{Text: parsed.Summary}
	}
	for _, exp := range parsed.Experience {
		resume.Experience = append(resume.Experience, types.ExperienceEntry{
			Position:  exp.JobTitle,
			Company:   exp.Company,
			Location:  exp.Location,
			StartDate: exp.StartDate,
			EndDate:   exp.EndDate,
			IsCurrent: exp.IsCurrent,
			Bullets:   exp.Bullets,
		})
	}
	for _, edu := range parsed.Education {
		resume.Education = append(resume.Education, types.EducationEntry{
			Degree:         edu.Degree,
			FieldOfStudy:   edu.FieldOfStudy,
			Institution:    edu.Institution,
			Location:       edu.Location,
			GraduationYear: edu.GraduationYear,
			GPA:            edu.GPA,
		})
	}
	if len(parsed.Skills) > 0 {
		var names []string
		for _, skill := range parsed.Skills {
			names = append(names, skill.Name)
		}
		resume.Skills = []types.SkillCategory{{Category: "Technical Skills", Skills: names}}
	}
	for _, cert := range parsed.Certifications {
		resume.Certifications = append(resume.Certifications, types.CertificationEntry{
			Name:   cert.Name,
			Issuer: cert.Issuer,
			Date:   cert.Date,
		})
	}
	for _, proj := range parsed.Projects {
		resume.Projects = append(resume.Projects, types.ProjectEntry{
			Name:         proj.Name,
			Description:  proj.Description,
			Technologies: proj.Technologies,
		})
	}
	for _, lang := range parsed.Languages {
		resume.Languages = append(resume.Languages, types.LanguageEntry{Language: lang})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(resume); err != nil {
		return nil, err
	}
	s.cache[resume.ID] = resume
	s.logger.Debug("Imported resume", "resume_id", resume.ID,
		"experience_entries", len(resume.Experience), "skills", len(parsed.Skills))
	return clone(resume), nil
}

// Get returns the resume with the given ID, loading it from disk on a
// cache miss.
func (s *Store) Get(id string) (*types.ResumeBuilder, error) {
	s.mu.RLock()
	if resume, ok := s.cache[id]; ok {
		defer s.mu.RUnlock()
		return clone(resume), nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	resume, err := s.load(id)
	if err != nil {
		return nil, err
	}
	s.cache[id] = resume
	return clone(resume), nil
}

// Update applies a partial update. Nil fields in the update are left
// untouched.
func (s *Store) Update(id string, update *types.ResumeUpdate) (*types.ResumeBuilder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resume, err := s.getLocked(id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		resume.Title = *update.Title
	}
	if update.Contact != nil {
		resume.Contact = update.Contact
	}
	if update.Summary != nil {
		resume.Summary = update.Summary
	}
	if update.Experience != nil {
		resume.Experience = *update.Experience
	}
	if update.Education != nil {
		resume.Education = *update.Education
	}
	if update.Skills != nil {
		resume.Skills = *update.Skills
	}
	if update.Certifications != nil {
		resume.Certifications = *update.Certifications
	}
	if update.Projects != nil {
		resume.Projects = *update.Projects
	}
	if update.Achievements != nil {
		resume.Achievements = *update.Achievements
	}
	if update.Languages != nil {
		resume.Languages = *update.Languages
	}
	if update.CustomSections != nil {
		resume.CustomSections = *update.CustomSections
	}

	resume.UpdatedAt = time.Now().UTC()
	if err := s.persist(resume); err != nil {
		return nil, err
	}
	return clone(resume), nil
}

// Delete removes a resume from the cache and disk.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !validID(id) {
		return errors.NewStorageError(errors.ErrCodeResumeNotFound,
			fmt.Sprintf("resume %s not found", id), nil)
	}

	_, cached := s.cache[id]
	delete(s.cache, id)

	path := s.path(id)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			if cached {
				return nil
			}
			return errors.NewStorageError(errors.ErrCodeResumeNotFound,
				fmt.Sprintf("resume %s not found", id), nil)
		}
		return errors.NewStorageError(errors.ErrCodeStorageFailed,
			fmt.Sprintf("failed to delete resume %s", id), err)
	}
	s.logger.Debug("Deleted resume", "resume_id", id)
	return nil
}

// List returns metadata for every stored resume, merging the cache with
// files on disk. Unreadable files are skipped.
func (s *Store) List() ([]types.BuilderSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]types.BuilderSummary, 0, len(s.cache))
	seen := make(map[string]bool, len(s.cache))
	for id, resume := range s.cache {
		seen[id] = true
		summaries = append(summaries, summaryOf(resume))
	}

	files, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to list storage directory", err)
	}
	for _, file := range files {
		id := strings.TrimSuffix(filepath.Base(file), ".json")
		if seen[id] {
			continue
		}
		data, err := os.ReadFile(file)
		if err != nil {
			s.logger.Warn("Skipping unreadable resume file", "path", file, "error", err.Error())
			continue
		}
		var resume types.ResumeBuilder
		if err := json.Unmarshal(data, &resume); err != nil {
			s.logger.Warn("Skipping malformed resume file", "path", file, "error", err.Error())
			continue
		}
		summaries = append(summaries, summaryOf(&resume))
	}
	return summaries, nil
}

// AddSectionEntry appends an entry to a list-based section. The entry is
// decoded strictly against the section's type.
func (s *Store) AddSectionEntry(id, section string, entry json.RawMessage) (*types.ResumeBuilder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resume, err := s.getLocked(id)
	if err != nil {
		return nil, err
	}

	decode := func(v any) error {
		dec := json.NewDecoder(strings.NewReader(string(entry)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return errors.NewValidationError(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid %s entry", section), err)
		}
		return nil
	}

	switch section {
	case SectionExperience:
		var e types.ExperienceEntry
		if err := decode(&e); err != nil {
			return nil, err
		}
		resume.Experience = append(resume.Experience, e)
	case SectionEducation:
		var e types.EducationEntry
		if err := decode(&e); err != nil {
			return nil, err
		}
		resume.Education = append(resume.Education, e)
	case SectionSkills:
		var e types.SkillCategory
		if err := decode(&e); err != nil {
			return nil, err
		}
		resume.Skills = append(resume.Skills, e)
	case SectionCertifications:
		var e types.CertificationEntry
		if err := decode(&e); err != nil {
			return nil, err
		}
		resume.Certifications = append(resume.Certifications, e)
	case SectionProjects:
		var e types.ProjectEntry
		if err := decode(&e); err != nil {
			return nil, err
		}
		resume.Projects = append(resume.Projects, e)
	default:
		return nil, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown section %q", section), nil)
	}

	resume.UpdatedAt = time.Now().UTC()
	if err := s.persist(resume); err != nil {
		return nil, err
	}
	return clone(resume), nil
}

// RemoveSectionEntry deletes the entry at index from a list-based section.
func (s *Store) RemoveSectionEntry(id, section string, index int) (*types.ResumeBuilder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resume, err := s.getLocked(id)
	if err != nil {
		return nil, err
	}

	outOfRange := func(n int) error {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("index %d out of range for section %q (%d entries)", index, section, n), nil)
	}

	switch section {
	case SectionExperience:
		if index < 0 || index >= len(resume.Experience) {
			return nil, outOfRange(len(resume.Experience))
		}
		resume.Experience = append(resume.Experience[:index], resume.Experience[index+1:]...)
	case SectionEducation:
		if index < 0 || index >= len(resume.Education) {
			return nil, outOfRange(len(resume.Education))
		}
		resume.Education = append(resume.Education[:index], resume.Education[index+1:]...)
	case SectionSkills:
		if index < 0 || index >= len(resume.Skills) {
			return nil, outOfRange(len(resume.Skills))
		}
		resume.Skills = append(resume.Skills[:index], resume.Skills[index+1:]...)
	case SectionCertifications:
		if index < 0 || index >= len(resume.Certifications) {
			return nil, outOfRange(len(resume.Certifications))
		}
		resume.Certifications = append(resume.Certifications[:index], resume.Certifications[index+1:]...)
	case SectionProjects:
		if index < 0 || index >= len(resume.Projects) {
			return nil, outOfRange(len(resume.Projects))
		}
		resume.Projects = append(resume.Projects[:index], resume.Projects[index+1:]...)
	default:
		return nil, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown section %q", section), nil)
	}

	resume.UpdatedAt = time.Now().UTC()
	if err := s.persist(resume); err != nil {
		return nil, err
	}
	return clone(resume), nil
}

// Save persists the given document, replacing whatever the store holds
// under its ID.
func (s *Store) Save(resume *types.ResumeBuilder) error {
	if resume.ID == "" {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest, "resume has no ID", nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := clone(resume)
	if err := s.persist(stored); err != nil {
		return err
	}
	s.cache[stored.ID] = stored
	return nil
}

// getLocked fetches from cache or disk. Caller holds the write lock.
func (s *Store) getLocked(id string) (*types.ResumeBuilder, error) {
	if resume, ok := s.cache[id]; ok {
		return resume, nil
	}
	resume, err := s.load(id)
	if err != nil {
		return nil, err
	}
	s.cache[id] = resume
	return resume, nil
}

// validID rejects IDs that could escape the storage directory.
func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, "/\\") && !strings.Contains(id, "..")
}

func (s *Store) load(id string) (*types.ResumeBuilder, error) {
	if !validID(id) {
		return nil, errors.NewStorageError(errors.ErrCodeResumeNotFound,
			fmt.Sprintf("resume %s not found", id), nil)
	}
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewStorageError(errors.ErrCodeResumeNotFound,
				fmt.Sprintf("resume %s not found", id), nil)
		}
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed,
			fmt.Sprintf("failed to read resume %s", id), err)
	}
	var resume types.ResumeBuilder
	if err := json.Unmarshal(data, &resume); err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed,
			fmt.Sprintf("failed to decode resume %s", id), err)
	}
	return &resume, nil
}

func (s *Store) persist(resume *types.ResumeBuilder) error {
	data, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return errors.NewStorageError(errors.ErrCodeStorageFailed,
			fmt.Sprintf("failed to encode resume %s", resume.ID), err)
	}
	if err := os.WriteFile(s.path(resume.ID), data, 0600); err != nil {
		return errors.NewStorageError(errors.ErrCodeStorageFailed,
			fmt.Sprintf("failed to write resume %s", resume.ID), err)
	}
	return nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func summaryOf(resume *types.ResumeBuilder) types.BuilderSummary {
	return types.BuilderSummary{
		ID:        resume.ID,
		Title:     resume.Title,
		CreatedAt: resume.CreatedAt,
		UpdatedAt: resume.UpdatedAt,
	}
}

// clone deep-copies a document so callers never share slices with the
// cached copy.
func clone(resume *types.ResumeBuilder) *types.ResumeBuilder {
	data, err := json.Marshal(resume)
	if err != nil {
		copied := *resume
		return &copied
	}
	var out types.ResumeBuilder
	if err := json.Unmarshal(data, &out); err != nil {
		copied := *resume
		return &copied
	}
	return &out
}
