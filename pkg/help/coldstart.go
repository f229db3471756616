package help

const ColdstartYAML = `# yts Quick Start

sources:
  file: "A watch page saved from the browser (Ctrl-S). Expand the transcript first."
  cdp: "A tab of a running Chrome started with --remote-debugging-port=9222"
  url: "Launch Chrome and open the video"

setup:
  store_key: |
    yts settings --api-key sk-...
  pick_template: |
    yts templates
    yts settings --template action_items

commands:
  summarize_saved_page: |
    yts summarize --file ~/Downloads/video.html

  summarize_open_tab: |
    yts summarize --cdp http://127.0.0.1:9222

  summarize_url: |
    yts summarize --url "https://www.youtube.com/watch?v=..." --template key_takeaways

  summary_to_file: |
    yts summarize --file video.html --output summary.md

  transcript_only: |
    yts transcript --file video.html --format json
    yts transcript --cdp http://127.0.0.1:9222 --text

  watch_downloads: |
    yts watch --dir ~/Downloads

  history: |
    yts history --limit 10
    yts history show

config: |
  # ~/.config/yts/config.yaml
  chat:
    endpoint: https://api.deepseek.com/chat/completions
    model: deepseek-chat
    timeout: 2m
  acquire:
    policy: poll        # fixed | poll
    load_delay: 5s
  clipboard:
    command: [wl-copy]
  templates:
    - id: tldr
      name: TL;DR
      prompt: Summarize the video in three sentences.
`
