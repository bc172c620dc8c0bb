package service

import (
	"errors"
	"fmt"
	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/internal/repository"
	"quiz_platform_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

// CatalogService 管理端课程体系维护：科目、章节、测验、题目
type CatalogService struct {
	SubjectRepo  *repository.SubjectRepository
	ChapterRepo  *repository.ChapterRepository
	QuizRepo     *repository.QuizRepository
	QuestionRepo *repository.QuestionRepository
}

func NewCatalogService(
	subjectRepo *repository.SubjectRepository,
	chapterRepo *repository.ChapterRepository,
	quizRepo *repository.QuizRepository,
	questionRepo *repository.QuestionRepository,
) *CatalogService {
	return &CatalogService{
		SubjectRepo:  subjectRepo,
		ChapterRepo:  chapterRepo,
		QuizRepo:     quizRepo,
		QuestionRepo: questionRepo,
	}
}

// ---- 科目 ----

func (s *CatalogService) CreateSubject(name, description string) (*model.Subject, error) {
	subject := &model.Subject{Name: name, Description: description}
	if err := s.SubjectRepo.Create(subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *CatalogService) UpdateSubject(id uint, name, description string) (*model.Subject, error) {
	subject, err := s.SubjectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubjectNotFound
		}
		return nil, err
	}
	subject.Name = name
	subject.Description = description
	if err := s.SubjectRepo.Update(subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *CatalogService) DeleteSubject(id uint) error {
	if _, err := s.SubjectRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSubjectNotFound
		}
		return err
	}
	return s.SubjectRepo.Delete(id)
}

func (s *CatalogService) ListSubjects(search string) ([]model.Subject, error) {
	return s.SubjectRepo.List(search)
}

// ---- 章节 ----

func (s *CatalogService) CreateChapter(subjectID uint, name, description string) (*model.Chapter, error) {
	if _, err := s.SubjectRepo.FindByID(subjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubjectNotFound
		}
		return nil, err
	}

	chapter := &model.Chapter{SubjectID: subjectID, Name: name, Description: description}
	if err := s.ChapterRepo.Create(chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *CatalogService) UpdateChapter(id, subjectID uint, name, description string) (*model.Chapter, error) {
	chapter, err := s.ChapterRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChapterNotFound
		}
		return nil, err
	}
	if _, err := s.SubjectRepo.FindByID(subjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubjectNotFound
		}
		return nil, err
	}

	chapter.SubjectID = subjectID
	chapter.Name = name
	chapter.Description = description
	if err := s.ChapterRepo.Update(chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *CatalogService) DeleteChapter(id uint) error {
	if _, err := s.ChapterRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrChapterNotFound
		}
		return err
	}
	return s.ChapterRepo.Delete(id)
}

func (s *CatalogService) ListChapters(search string, subjectID uint) ([]repository.ChapterRow, error) {
	return s.ChapterRepo.List(search, subjectID)
}

// ---- 测验 ----

type QuizInput struct {
	ChapterID   uint
	Title       string
	Description string
	Date        time.Time
	Duration    int
}

func (s *CatalogService) CreateQuiz(in QuizInput) (*model.Quiz, error) {
	if _, err := s.ChapterRepo.FindByID(in.ChapterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChapterNotFound
		}
		return nil, err
	}

	quiz := &model.Quiz{
		ChapterID:   in.ChapterID,
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Duration:    in.Duration,
	}
	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *CatalogService) UpdateQuiz(id uint, in QuizInput) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if _, err := s.ChapterRepo.FindByID(in.ChapterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChapterNotFound
		}
		return nil, err
	}

	quiz.ChapterID = in.ChapterID
	quiz.Title = in.Title
	quiz.Description = in.Description
	quiz.Date = in.Date
	quiz.Duration = in.Duration
	if err := s.QuizRepo.Update(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *CatalogService) DeleteQuiz(id uint) error {
	if _, err := s.QuizRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuizNotFound
		}
		return err
	}
	return s.QuizRepo.Delete(id)
}

func (s *CatalogService) ListQuizzes(search string, chapterID uint) ([]repository.QuizRow, error) {
	return s.QuizRepo.List(search, chapterID, 0)
}

// ---- 题目 ----

// ErrInvalidQuestion 题目校验失败的基错误，具体原因由包装错误给出
var ErrInvalidQuestion = errors.New("invalid question")

var (
	errOptionCount   = fmt.Errorf("%w: a question must have exactly 4 non-empty options", ErrInvalidQuestion)
	errCorrectAnswer = fmt.Errorf("%w: correct answer must be between 0 and 3", ErrInvalidQuestion)
)

type QuestionInput struct {
	QuestionText  string
	Options       []string
	CorrectAnswer int
}

func validateQuestion(in QuestionInput) error {
	if len(in.Options) != 4 {
		return errOptionCount
	}
	for _, option := range in.Options {
		if option == "" {
			return errOptionCount
		}
	}
	if in.CorrectAnswer < 0 || in.CorrectAnswer > 3 {
		return errCorrectAnswer
	}
	return nil
}

func (s *CatalogService) CreateQuestion(quizID uint, in QuestionInput) (*model.Question, error) {
	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if err := validateQuestion(in); err != nil {
		return nil, err
	}

	encoded, err := util.EncodeOptions(in.Options)
	if err != nil {
		return nil, err
	}

	question := &model.Question{
		QuizID:        quizID,
		QuestionText:  in.QuestionText,
		Options:       encoded,
		CorrectAnswer: in.CorrectAnswer,
	}
	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

// UpdateQuestion 更新时选项重新编码为规范 JSON，旧格式行由此逐步归一
func (s *CatalogService) UpdateQuestion(id uint, in QuestionInput) (*model.Question, error) {
	question, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	if err := validateQuestion(in); err != nil {
		return nil, err
	}

	encoded, err := util.EncodeOptions(in.Options)
	if err != nil {
		return nil, err
	}

	question.QuestionText = in.QuestionText
	question.Options = encoded
	question.CorrectAnswer = in.CorrectAnswer
	if err := s.QuestionRepo.Update(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *CatalogService) DeleteQuestion(id uint) (uint, error) {
	question, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, util.ErrQuestionNotFound
		}
		return 0, err
	}
	if err := s.QuestionRepo.Delete(id); err != nil {
		return 0, err
	}
	return question.QuizID, nil
}

func (s *CatalogService) ListQuestions(quizID uint) ([]model.Question, error) {
	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return s.QuestionRepo.ListByQuiz(quizID)
}
