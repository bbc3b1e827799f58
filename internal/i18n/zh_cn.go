package i18n

// ZhCNMessages 简体中文文案
// ZhCNMessages Simplified Chinese message catalog
var ZhCNMessages = map[string]string{
	"panel.quotes": "报价",
	"panel.draft":  "草稿",
	"panel.output": "输出",
	"panel.empty":  "暂无内容",

	"login.title":    "登录或创建账号",
	"login.email":    "邮箱",
	"login.password": "密码",
	"login.name":     "名称（可选）",
	"login.working":  "登录中...",

	"status.ready":      "就绪",
	"status.busy":       "处理中...",
	"status.signed_out": "未登录",

	"input.placeholder": "输入命令，例如 /quotes 或 /help",
	"prompt.hint":       "输入回答后回车 · esc 取消",
	"key.panels":        "切换面板",
	"key.next_field":    "下一项",
	"key.prev_field":    "上一项",
	"key.continue":      "继续",
	"key.run":           "执行",
	"key.reload":        "刷新",
	"key.quit":          "退出",
	"key.cancel":        "取消",
	"key.scroll_up":     "向上滚动",
	"key.scroll_down":   "向下滚动",
	"key.page_up":       "上一页",
	"key.page_down":     "下一页",

	"help.header":       "命令：",
	"cmd.unknown":       "未知命令：%s（试试 /help）",
	"error.prefix":      "错误：%s",
	"confirm.prompt":    "%s %s？[y/N]：",
	"confirm.cancelled": "已取消",

	"auth.required":   "未登录；请使用 /login <email> [name]",
	"auth.password":   "密码：",
	"auth.signed_in":  "已登录：%s · %s",
	"auth.registered": "已注册并登录：%s · %s",
	"auth.logged_out": "已退出登录",
	"auth.failed":     "认证失败",

	"lang.current":    "语言：%s",
	"lang.switched":   "语言已切换为 %s",
	"server.current":  "服务端：%s",
	"server.switched": "服务端已切换为 %s",

	"quotes.all":          "全部",
	"quotes.filter":       "状态筛选：%s",
	"quotes.empty":        "暂无报价",
	"quote.submitted":     "报价 %s 已提交",
	"quote.deleted":       "报价 %s 已删除",
	"quote.not_found":     "找不到报价 %s；请先执行 /quotes",
	"quote.no_share":      "报价 %s 没有公开链接",
	"draft.company":       "公司：%s",
	"draft.preview_total": "预览合计：%s（以服务端合计为准）",
	"draft.item_added":    "已添加第 %d 行",
	"draft.item_updated":  "已更新第 %d 行",
	"draft.item_removed":  "已删除第 %d 行",
	"draft.reset":         "草稿已重置",

	"col.company":    "公司",
	"col.status":     "状态",
	"col.total":      "合计",
	"col.share":      "分享",
	"col.item":       "项目",
	"col.price":      "单价",
	"col.qty":        "数量",
	"col.tax":        "税率 %",
	"col.line_total": "行合计",
	"col.name":       "名称",
	"col.email":      "邮箱",
	"col.phone":      "电话",
	"col.role":       "角色",
	"col.time":       "时间",
	"col.action":     "操作",
	"col.target":     "对象",
	"col.decision":   "结果",

	"confirmations.empty": "暂无确认记录",
	"decision.confirmed":  "已确认",
	"decision.declined":   "已拒绝",

	"dashboard.counts":          "客户 %d · 报价 %d · 待办任务 %d",
	"dashboard.recent_contacts": "最近联系人",
	"dashboard.recent_quotes":   "最近报价",
	"dashboard.recent_tasks":    "最近任务",

	"contacts.empty":         "暂无联系人",
	"contacts.added":         "已添加联系人 %s",
	"contacts.deleted":       "已删除联系人 %s",
	"contacts.not_found":     "找不到联系人 %s；请先执行 /contacts",
	"contacts.name_required": "联系人名称必填",

	"projects.empty":       "暂无项目",
	"projects.added":       "已添加项目 %s",
	"projects.not_found":   "找不到项目 %s；请先执行 /projects",
	"tasks.added":          "已添加任务 %s",
	"tasks.moved":          "任务 %s 已移至 %s",
	"tasks.not_found":      "找不到任务 %s；请先执行 /tasks",
	"tasks.title_required": "任务标题必填",
	"tasks.priority":       "优先级 %s",
	"tasks.empty_column":   "  （空）",

	"settings.saved": "已保存",
	"settings.show":  "公司：%s\n语言：%s\n主题：%s",
	"users.empty":    "暂无用户",
}
