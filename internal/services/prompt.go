package services

import (
  "fmt"
  "strings"
)

const trainerSystemPrompt = "You are an expert corporate trainer and instructional designer."

// ComposePlanPrompt renders the aggregated inputs into the completion
// instruction for plan generation. It cannot guarantee a conforming
// response, only maximize the chance of one.
func ComposePlanPrompt(baselineJSON, modulesJSON, learningStyleText, kpiText string) string {
  var b strings.Builder

  b.WriteString("You are an expert corporate trainer. Given the following assessment results and feedback for an employee, the available training modules, and the employee's learning style and analysis, generate a personalized JSON learning plan. If KPI scores (description and score) are available, use them; otherwise, rely only on baseline assessments.\n\n")
  if learningStyleText != "" {
    b.WriteString(learningStyleText)
    b.WriteString("\n\n")
  }
  if kpiText != "" {
    b.WriteString(kpiText)
    b.WriteString("\n\n")
  }
  b.WriteString("The employee's learning style is classified as one of: Concrete Sequential (CS), Concrete Random (CR), Abstract Sequential (AS), or Abstract Random (AR).\n\n")
  b.WriteString("When generating the plan, tailor your recommendations, study strategies, and tips to fit the employee's specific learning style and analysis. For example, suggest structured, step-by-step approaches for CS, creative and flexible methods for CR, analytical and theory-driven strategies for AS, and collaborative or intuitive approaches for AR.\n\n")
  b.WriteString("The plan should:\n- Identify weak areas based on scores and feedback\n- Match module objectives to weaknesses\n- Specify what to study, in what order, and how much time for each\n- Output a JSON object with: modules (ordered), objectives, recommended time (hours), and any tips or recommendations\n- Ensure all recommendations and tips are personalized to the employee's learning style\n\n")
  b.WriteString("Additionally, provide a detailed reasoning (as a separate JSON object) explaining how you arrived at this learning plan, including:\n- Which assessment results, feedback, learning style, and KPI factors (if present) influenced your choices\n- For each module, justify the recommended time duration (e.g., why 3 hours and not less or more) based on the employee's needs, weaknesses, learning style, and KPIs (if present)\n\n")
  b.WriteString("Assessment Results (baseline only):\n")
  b.WriteString(baselineJSON)
  b.WriteString("\n\nAvailable Modules:\n")
  b.WriteString(modulesJSON)
  b.WriteString("\n\nOutput ONLY a single JSON object with two top-level keys: plan and reasoning. Do NOT include any other text, explanation, or formatting. Example: '{ \"plan\": { ... }, \"reasoning\": { ... } }'")

  return b.String()
}

// LearningStyleQuestions is the 40-item Gregorc survey, 10 questions per
// style: CS 1-10, AS 11-20, AR 21-30, CR 31-40.
var LearningStyleQuestions = []string{
  "I like having written directions before starting a task.",
  "I prefer to follow a schedule rather than improvise.",
  "I feel most comfortable when rules are clear.",
  "I focus on details before seeing the big picture.",
  "I rely on tried-and-tested methods to get things done.",
  "I need to finish one task before moving to the next.",
  "I learn best by practicing exact procedures.",
  "I find comfort in structure, order, and neatness.",
  "I like working with checklists and measurable steps.",
  "I feel uneasy when things are left open-ended.",
  "I enjoy reading and researching before making decisions.",
  "I like breaking down problems into smaller parts.",
  "I prefer arguments backed by evidence and facts.",
  "I think logically through situations before acting.",
  "I enjoy analyzing patterns, models, and systems.",
  "I often reflect deeply before I share my opinion.",
  "I value accuracy and logical consistency.",
  "I prefer theories and principles to practical examples.",
  "I like well-reasoned debates and discussions.",
  "I enjoy working independently on complex problems.",
  "I learn best through stories or real-life experiences.",
  "I am motivated when learning is connected to people's lives.",
  "I prefer group projects and collaborative discussions.",
  "I often trust my intuition more than data.",
  "I enjoy free-flowing brainstorming sessions.",
  "I find it easy to sense others' feelings in a group.",
  "I value relationships more than rigid rules.",
  "I like using imagination to explore new ideas.",
  "I prefer flexible plans that allow room for change.",
  "I need an emotional connection to stay interested in learning.",
  "I like trying out new methods, even if they fail.",
  "I enjoy solving problems in unconventional ways.",
  "I learn best by experimenting and adjusting as I go.",
  "I dislike strict rules that limit my creativity.",
  "I am energized by competition and challenges.",
  "I like taking risks if there's a chance of high reward.",
  "I get bored doing the same task repeatedly.",
  "I prefer freedom to explore multiple approaches.",
  "I often act quickly and figure things out later.",
  "I am comfortable making decisions with limited information.",
}

// ComposeLearningStylePrompt pairs the survey questions with the submitted
// Likert answers and asks for a Gregorc classification report.
func ComposeLearningStylePrompt(answers []int) string {
  pairs := make([]string, 0, len(LearningStyleQuestions))
  for i, q := range LearningStyleQuestions {
    answer := ""
    if i < len(answers) {
      answer = fmt.Sprintf("%d", answers[i])
    }
    pairs = append(pairs, fmt.Sprintf("Q%d: %s\nA%d: %s", i+1, q, i+1, answer))
  }
  qaPairs := strings.Join(pairs, "\n")

  return `You are an expert educational psychologist specializing in learning style models. Your goal is to administer the Gregorc Learning Style Delineator, analyze the user's responses, calculate their scores, and generate a detailed and empathetic report on their dominant learning style(s).

Background on the Model: The Gregorc model defines four learning styles based on how individuals perceive and order information:
1. Concrete Sequential (CS): The organizer. Learns through hands-on experience, logical sequence, structured environments, and practicality. Prefers clear instructions, deadlines, and facts.
2. Abstract Sequential (AS): The thinker. Learns through analysis, intellectual exploration, theoretical models, and critical thinking. Prefers lectures, reading, research, and independent work.
3. Abstract Random (AR): The empathizer. Learns through reflection, emotional connection, group harmony, and holistic understanding. Prefers group discussions, open-ended activities, and personal relationships with instructors.
4. Concrete Random (CR): The innovator. Learns through experimentation, intuition, discovery, and solving problems in unconventional ways. Prefers trial-and-error, options, flexibility, and challenging the status quo.
Most people have a blend but with a dominant preference.

Step 1 - Assess the learning style
The questionnaire measures four distinct learning styles: Concrete Sequential (CS), Abstract Sequential (AS), Abstract Random (AR), and Concrete Random (CR). The test consists of 40 total questions, 10 per style, answered on a Likert scale from 1 = "Least Like Me" to 5 = "Most Like Me". Mapping of questions to styles:
  - Concrete Sequential (CS): Questions 1-10
  - Abstract Sequential (AS): Questions 11-20
  - Abstract Random (AR): Questions 21-30
  - Concrete Random (CR): Questions 31-40

Your step-by-step task:
1. Calculate the scores: for each of the four styles, sum the scores of its 10 questions. The maximum per style is 50, the minimum 10.
2. Identify dominant and secondary styles: the highest total is the dominant style, the second-highest a strong secondary preference. If scores are within 2-3 points, note the blend. Describe preference strength with these intervals: 40-50 Very Strong, 30-39 Strong, 20-29 Moderate, 10-19 Low.

Step 2: Generate the user report titled "Your Personal Learning Style Insights" with: the natural learning style (2-3 engaging paragraphs on the dominant style), how they thrive (ideal learning environment, 4-5 conditions; superpowers, 3-4 strengths), and tips to make learning easier (3-4 actionable strategies plus content types to look for).

Return JSON: {
  "scores": { "CS": number, "AS": number, "AR": number, "CR": number },
  "dominant_style": "CS|AS|AR|CR",
  "secondary_style": "CS|AS|AR|CR",
  "report": "...full user report..."
}

Survey Responses:
` + qaPairs
}

// ComposeQuizPrompt asks for a multiple-choice quiz over one processed
// module, tailored to the employee's learning style.
func ComposeQuizPrompt(moduleTitle, moduleContent, styleCode string, questionCount int) string {
  var b strings.Builder

  b.WriteString(fmt.Sprintf("Generate a %d-question multiple-choice quiz for the training module below.\n\n", questionCount))
  b.WriteString(fmt.Sprintf("Module Title: %s\n\nModule Content:\n%s\n\n", moduleTitle, moduleContent))
  if styleCode != "" {
    b.WriteString(fmt.Sprintf("The employee's Gregorc learning style is %s. Phrase questions and scenarios in a way that suits this style.\n\n", styleCode))
  }
  b.WriteString("Each question must have exactly 4 options and one correct answer.\n\n")
  b.WriteString("Output ONLY a single JSON object of the form {\"quiz\": [{\"question\": \"...\", \"options\": [\"...\", \"...\", \"...\", \"...\"], \"correct_index\": 0}]}. Do NOT include any other text, explanation, or formatting.")

  return b.String()
}

// ComposeQuizFeedbackPrompt asks for grading of a submitted quiz attempt.
func ComposeQuizFeedbackPrompt(questionsJSON, answersJSON string) string {
  var b strings.Builder

  b.WriteString("Grade the following quiz attempt. For each question compare the selected option index against the correct one.\n\n")
  b.WriteString("Questions:\n")
  b.WriteString(questionsJSON)
  b.WriteString("\n\nSelected answer indexes (in question order):\n")
  b.WriteString(answersJSON)
  b.WriteString("\n\nProvide a short, encouraging feedback paragraph that names the topics the employee should review.\n\n")
  b.WriteString("Output ONLY a single JSON object of the form {\"score\": number, \"max_score\": number, \"feedback\": \"...\"}. Do NOT include any other text, explanation, or formatting.")

  return b.String()
}
