package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	// LectureNoteSystemPrompt is the fixed pedagogical template every request starts from.
	LectureNoteSystemPrompt = `I will be sending you topics with their subtopics. Starting from H1 (used only for the main topic header), followed by H2 and lower levels for subtopics, generate a well-structured lecture-style note aligned with Nigerian teaching and note-writing standards.

Include (And formatted this way in markdown):
- Topic/Heading (use Header1) – Clear and bold.
- Subtopics (use Header2, Header3 as needed) – Properly broken down for easy flow.
- Detailed Explanation – Engaging lecture tone, easy for students to follow.
- Examples – Worked examples and varied scenarios.
- Classwork – Short practice questions.
- Real-life Practical Classwork/Applications (if applicable) – Everyday Nigerian contexts.
- Summary/Key Points – Quick recap.
- Assignment (optional) – Extended practice task.

Goals:
- In-depth but simple to understand.
- Interactive (teacher-like delivery).
- Practical (connect theory to Nigerian life).
- Curriculum-focused (standard Nigerian secondary/tertiary lecture notes).

Format for weeks:
- Week {N} - {topic name} (use Header1)
- Start with a greeting, e.g., "Good day class, in today's class we are going to…"

MOST IMPORTANT BULLET RULE:
Whenever you list bullet points (e.g., Key Characteristics), after each bullet add a colon and then a clear explanation (max 4 sentences) that simplifies the idea for easy understanding. Do not leave bullets as terse fragments.

Knowledge base and reference:
- Always check provided reference documents before writing. Reference excerpts from the scheme of work and curriculum documents are attached below when available. Use them to understand structure and curriculum mapping.
- When the user requests like: "Civic education SS1 week1", consult the scheme document columns (numbers, SS1, SS2, SS3) to find the appropriate content and structure your output accordingly.

Write mathematical expressions in LaTeX between $ signs for inline math and $$ for display math.

VERY IMPORTANT: Do not add any conversational filler or commentary. Your response should be only the generated note, starting directly with the first H1 header.`

	// ReferenceExcerptsFormat wraps the selected knowledge excerpt: sources, excerpt.
	ReferenceExcerptsFormat = "\n\n---\n\nReference Excerpts (from: %s):\n\n%s\n\n---\n\nFollow the structure strictly."

	// ClassLevelFormat tailors the note to the selected class level.
	ClassLevelFormat = "\n\nThe user has selected the following class level: %s. Please tailor the content to be appropriate for this level of understanding."

	// CustomModeFormat lists the user's week-by-week selections.
	CustomModeFormat = "\n\nThe user is in custom mode. Generate notes for the entire term using the following weekly topics:\n%s\n\n" + WeekHeadingReminder

	// SpreadsheetModeFormat lists the qualifying rows of the uploaded scheme: column number, column letter, week lines.
	SpreadsheetModeFormat = "\n\nThe user uploaded a spreadsheet. Generate notes ONLY for the non-empty entries found in Column %d (%s) using the exact week numbers (row index as week).\nGenerate in ascending order by week number.\n\nWeeks to generate (skip weeks marked with \"-\"):\n%s\n\n" + WeekHeadingReminder

	WeekHeadingReminder = `Reminder: Start each week with an H1 exactly as: "Week {N} - {topic}" and then proceed with the required structure.`

	// WeekLineFormat renders one week entry: week number, topic text.
	WeekLineFormat = "- Week %d: %s"
)
