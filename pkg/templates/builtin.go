package templates

import "github.com/dtnitsch/yt-summarizer/models"

// builtin lists the shipped templates in display order.
var builtin = []models.PromptTemplate{
	{ID: "general_summary", DisplayName: "General Summarizer", InstructionText: generalSummaryPrompt},
	{ID: "music_producer", DisplayName: "Music Producer", InstructionText: musicProducerPrompt},
	{ID: "filipino_linguist", DisplayName: "Filipino Linguist", InstructionText: filipinoLinguistPrompt},
	{ID: "ai_developer", DisplayName: "AI Developer", InstructionText: aiDeveloperPrompt},
	{ID: "technical_analysis", DisplayName: "Technical Analysis", InstructionText: technicalAnalysisPrompt},
	{ID: "educational_notes", DisplayName: "Educational Study Notes", InstructionText: educationalNotesPrompt},
	{ID: "action_items", DisplayName: "Action Items & Insights", InstructionText: actionItemsPrompt},
	{ID: "software_developer", DisplayName: "Software Developer", InstructionText: softwareDeveloperPrompt},
}

const (
	generalSummaryPrompt = `Create a comprehensive summary of the following YouTube video transcript. Include key points, main topics, and important details in a well-structured markdown format.`

	musicProducerPrompt = `You are a **Professional Music Producer and Audio Engineer**.
Summarize the following **YouTube tutorial transcript** into a **fully reproducible technical instruction manual**, formatted in **Markdown**.

The goal is for the reader to be able to **replicate exactly what the video demonstrates** — including signal flow, sound design parameters, mixing chain, and arrangement techniques.

Note: The reader is using **[Insert User's DAW, e.g., Ableton Live / Reaper / Logic Pro]**.
Please include the following sections:

## Overview
- Provide a 2–3 sentence overview of the production technique, sound design goal, mixing outcome, or AI assisted methodology outcome.
- Mention key instruments (VSTs/Hardware), effects plugins, software/services, or music theory concepts involved.

## Requirements and Setup
- List **DAW requirements**, necessary third-party plugins (or stock alternatives), and sample packs.
- Specify **routing setups** (e.g., Send/Return tracks, Group buses, Sidechain routing).
- Link to **relevant presets, sample libraries, or project files** referenced in the video.
- Use bold text for specific plugin names.

## Step-by-Step Implementation Guide
- Reproduce each step from the tutorial **in order**.
- Include:
  - **Menu paths and Keyboard shortcuts** (e.g., "Create new MIDI track: 'Cmd+Shift+T'").
  - **Parameter values** (e.g., "Set Attack to **15ms**, Ratio to **4:1**, Threshold to **-12dB**").
  - **Signal Chain Order** (e.g., Synth -> EQ -> Saturation -> Compressor).
  - **Musical details** (Chord progressions, specific notes, or automation curve shapes).
- Each major step should have a subheader (e.g., "### Step 3: Designing the Bass Patch").
- Ensure all knob values, fader levels, and routing destinations are precise.

## Common Issues and Fixes
- Summarize any **mixing mistakes or technical issues** mentioned (e.g., Phase cancellation, Muddy frequencies, Clipping).
- Include diagnostic tips (e.g., "Check correlation meter," "Solo the low-end").
- Optionally include a **comparison table** (Problem | Cause | Mixing Move).

## Example Output or Results
- Describe the **expected sonic result** (e.g., "The kick should punch through the mix without pumping").
- Explain how to verify the result (e.g., "Use a spectrum analyzer to check the sub-bass around 40Hz").
- Reference visual cues like waveform shapes or gain reduction meters.

## Additional Notes and Tips
- Include any optional creative variations, workflow hacks, or CPU-saving tips.
- Mention **mastering considerations** or alternative plugin recommendations.

## Review Questions (Optional)
- Include 3–5 questions testing understanding of the production concept.
- Link to **external resources or similar tutorials** for deeper learning.

---

**Formatting Guidelines**
- Use bullet points, tables, and bold text liberally for readability.
- Wrap **keyboard shortcuts** and **parameter values** in single backticks or bold text.
- Prefer accuracy and reproducibility — assume the reader is following along in their DAW in real time.`

	filipinoLinguistPrompt = `Your role: A Filipino Linguist. Convert the following youtube video into a comprehensive, thoroughly covered summary document in the style of 'Quickstudy charts' formatted in markdown complete with instructions on verb conjugation`

	aiDeveloperPrompt = `Summarize the article/chapter/transcript explaining the key points. Include detailed instructions for workflows for a particular goal/outcome and be sure to include code snippets, terminal commands, installation/package requirements (note: I prefer UV for installing python packages). Output comparison tables if there were any topics or key terms of comparison. Note: the reader owns an RTX Pro 6000 Blackwell Max-Q if relevant`

	technicalAnalysisPrompt = `Analyze the following YouTube video transcript from a technical perspective. Break down complex concepts, identify key technical terms, and provide explanations in markdown format.`

	educationalNotesPrompt = `Convert the following YouTube video transcript into detailed study notes. Include main concepts, examples, and key takeaways formatted as comprehensive educational material in markdown.`

	actionItemsPrompt = `Extract actionable insights and key takeaways from the following YouTube video transcript. Focus on practical applications and important points that viewers should remember.`

	softwareDeveloperPrompt = `Summarize the following **YouTube tutorial transcript** into a **fully reproducible technical instruction manual**, formatted in **Markdown**.
The goal is for the reader to be able to **replicate exactly what the video demonstrates** — including setup, dependencies, commands, and code.

Note: the reader owns an RTX Pro 6000 Blackwell Max-Q if relevant
Please include the following sections:

## Overview
- Provide a 2–3 sentence overview of what the tutorial accomplishes and its end goal.
- Mention key technologies, frameworks, or programming languages involved.

## Requirements and Setup
- List **software requirements**, dependencies, and environment setup.
- Include **terminal commands** for installation
- Specify **operating system compatibility** (e.g., macOS, Windows, Linux).
- Link to **relevant GitHub repositories**, APIs, datasets, or documentation referenced in the video.
- Use fenced code blocks for commands.

## Step-by-Step Implementation Guide
- Reproduce each step from the tutorial **in order**.
- Include:
  - Terminal commands
  - File creation or directory structure
  - Code snippets (use correct language fencing, e.g., ` + "```" + `python` + "```" + `)
  - Configuration settings (".env", "config.json", etc.)
  - Menu paths and keyboard shortcuts if GUI-based (e.g., "File → Preferences → Settings")
- Each major step should have a subheader (e.g., "### Step 3: Train the Model").
- Ensure all variables, filenames, and environment paths are consistent.

## Common Issues and Fixes
- Summarize any **errors or issues** mentioned in the video and how they were resolved.
- Include diagnostic commands or configuration edits if shown.
- Optionally include a **comparison table** (Problem | Cause | Solution).

## Example Output or Results
- Show **expected outputs**, screenshots, or sample terminal outputs.
- If applicable, explain how to verify the build, run, or output correctness.

## Additional Notes and Tips
- Include any optional optimizations, shortcuts, or alternative libraries/tools.
- Mention any **performance considerations**, flags, or environment variables.

## Review Questions (Optional)
- Include 3–5 questions testing understanding of the material.
- Link to **external resources or GitHub examples** for deeper learning.

---

**Formatting Guidelines**
- Use bullet points, tables, and fenced code blocks liberally.
- Use bold text for commands or parameters when explaining them inline.
- Wrap keyboard shortcuts in single backticks
- Prefer accuracy and reproducibility over brevity — assume the reader is following along in real time.`
)
