package entity

type ToolName = string

const (
	ToolBrowserNavigate   ToolName = "browser_navigate"
	ToolBrowserClick      ToolName = "browser_click"
	ToolBrowserFill       ToolName = "browser_fill"
	ToolBrowserScroll     ToolName = "browser_scroll"
	ToolBrowserScreenshot ToolName = "browser_screenshot"
	ToolBrowserPressEnter ToolName = "browser_press_enter"
	ToolBrowserExtract    ToolName = "browser_extract"
	ToolBrowserUISummary  ToolName = "browser_ui_summary"

	ToolBrowserbaseLoad ToolName = "browserbase_load"
	ToolStagehand       ToolName = "stagehand"
)
