package scraper

// Profile page selectors, first match wins. These WILL break when LinkedIn
// changes their markup; verify against a profile page in DevTools before
// adjusting the order.

var nameSelectors = []string{
	`h1.text-heading-xlarge`,
	`.pv-text-details__left-panel h1`,
	`h1[data-generated-suggestion-target]`,
	`main section h1`,
	`h1`,
}

var headlineSelectors = []string{
	`.text-body-medium.break-words`,
	`.pv-text-details__left-panel .text-body-medium`,
	`.ph5.pb5 .text-body-medium`,
	`.text-body-medium`,
}

var locationSelectors = []string{
	`.text-body-small.inline.t-black--light.break-words`,
	`.pv-text-details__left-panel .text-body-small`,
	`.ph5.pb5 .text-body-small`,
	`[data-test-id='location']`,
	`.text-body-small`,
}

var experienceSelectors = []string{
	`section[data-section='experience']`,
	`#experience ~ .pvs-list`,
	`section[id*='experience']`,
	`[data-section='experience']`,
}

// Within the first experience entry, the visible text lines.
var experienceItemSelector = `.pvs-list__item, .pvs-entity, li`

var aboutSelectors = []string{
	`section[data-section='summary'] .inline-show-more-text`,
	`section[data-section='summary'] .pv-shared-text-with-see-more`,
	`#about ~ .display-flex .inline-show-more-text`,
	`#about ~ .pv-shared-text-with-see-more`,
	`section[id='about'] .inline-show-more-text`,
	`[data-section='summary']`,
	`section[id*='about']`,
}
