package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/lockstead/recovery/internal/recovery/domain"
)

type questionsRepo struct {
	db dbtx
}

// Persisted shape matches the legacy application schema:
// security_questions(id, question, encrypted_answer_hash, created_at, updated_at).
// Reads order by created_at with id as tie-break so the sequence is stable
// even when several questions are registered within the same millisecond.

func (r *questionsRepo) ListQuestions(ctx context.Context) ([]domain.SecurityQuestion, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, question, encrypted_answer_hash, created_at, updated_at
		FROM security_questions
		ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []domain.SecurityQuestion
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (r *questionsRepo) GetQuestionByID(ctx context.Context, id string) (domain.SecurityQuestion, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, question, encrypted_answer_hash, created_at, updated_at
		FROM security_questions
		WHERE id = ?`, id)

	q, err := scanQuestion(row)
	if err != nil {
		return domain.SecurityQuestion{}, mapNotFound(err)
	}
	return q, nil
}

func (r *questionsRepo) CreateQuestion(ctx context.Context, q domain.SecurityQuestion) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO security_questions (id, question, encrypted_answer_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		q.ID, q.Question, q.AnswerHash, q.CreatedAt.UnixMilli(), q.UpdatedAt.UnixMilli())
	return err
}

func (r *questionsRepo) UpdateAnswerHash(ctx context.Context, id string, newHash string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE security_questions
		SET encrypted_answer_hash = ?, updated_at = ?
		WHERE id = ?`,
		newHash, time.Now().UTC().UnixMilli(), id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

func (r *questionsRepo) DeleteAllQuestions(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM security_questions`)
	return err
}

func (r *questionsRepo) CountQuestions(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM security_questions`).Scan(&count)
	return count, err
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanQuestion(s scanner) (domain.SecurityQuestion, error) {
	var (
		q                  domain.SecurityQuestion
		createdAt, updated int64
	)
	if err := s.Scan(&q.ID, &q.Question, &q.AnswerHash, &createdAt, &updated); err != nil {
		return domain.SecurityQuestion{}, err
	}
	q.CreatedAt = time.UnixMilli(createdAt).UTC()
	q.UpdatedAt = time.UnixMilli(updated).UTC()
	return q, nil
}
