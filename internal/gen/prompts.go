package gen

import "fmt"

const quizPromptTemplate = `Generate a quiz with %d to %d questions based on the document below. Follow these requirements exactly:

1. Mix multiple-choice and true/false questions.
2. Make roughly 20-30%% of the questions "tricky": answerable only by inference from the document, not by direct lookup.
3. Each multiple-choice question must have 4 plausible options with exactly one correct answer.
4. Each true/false question must have the options "True" and "False".
5. The "answer" field must exactly match one of the options.
6. Include a short "explanation" for each question describing why the answer is correct.

Document:
%s`

const subjectivePromptTemplate = `Generate exactly %d open-ended questions based on the document below. The questions should require critical thinking: analysis, evaluation, or applying the document's ideas to new situations. Do not ask simple recall questions. Each question must be answerable from the document's content.

Document:
%s`

const flashcardPromptTemplate = `Extract the key terms and concepts from the document below and produce flashcards. Each flashcard pairs one term with a concise definition taken from the document. Cover every important term, but do not invent terms that are not in the document.

Document:
%s`

const gradePromptTemplate = `You are grading a student's answer to an open-ended question.

Question: %s

Student's answer: %s

Score the answer with an integer from 0 (completely wrong or empty) to 5 (complete and insightful), and give two or three sentences of constructive feedback.`

func quizPrompt(minQuestions, maxQuestions int, text string) string {
	return fmt.Sprintf(quizPromptTemplate, minQuestions, maxQuestions, text)
}

func subjectivePrompt(count int, text string) string {
	return fmt.Sprintf(subjectivePromptTemplate, count, text)
}

func flashcardPrompt(text string) string {
	return fmt.Sprintf(flashcardPromptTemplate, text)
}

func gradePrompt(question, answer string) string {
	return fmt.Sprintf(gradePromptTemplate, question, answer)
}
