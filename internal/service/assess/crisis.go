package assess

import "sort"

// crisisResources 按国家索引的求助热线与危机干预资源
var crisisResources = map[string][]string{
	"Argentina": {
		"**Suicide Prevention Hotline**: 135 (24/7)",
		"[Asistencia al Suicida](https://www.asistenciaalsuicida.org.ar)",
		"**Hospital Nacional Mental Health**: 0800-345-1435",
		"[Mental Health Argentina](https://www.argentina.gob.ar/salud/mental)",
	},
	"Australia": {
		"**Lifeline Australia**: 13 11 14",
		"[Beyond Blue](https://www.beyondblue.org.au): 1300 22 4636",
		"[Kids Helpline](https://www.kidshelpline.com.au): 1800 55 1800",
	},
	"Bangladesh": {
		"**National Helpline**: 09666777222",
		"[Mental Health Bangladesh](https://www.dghs.gov.bd)",
		"**Kaan Pete Roi**: 09606900100",
		"[Moner Bondhu](https://www.monerbondhu.com): 09612444999",
	},
	"Brazil": {
		"**CVV Suicide Prevention**: 188 (24/7)",
		"[Mental Health Brazil](https://www.cvv.org.br)",
		"**Psychiatric Emergency**: 190",
	},
	"Canada": {
		"**Crisis Services Canada**: 1-833-456-4566",
		"[Kids Help Phone](https://kidshelpphone.ca): 1-800-668-6868",
		"[Hope for Wellness Helpline](https://www.hopeforwellness.ca): 1-855-242-3310",
	},
	"China": {
		"**Beijing Suicide Research Center**: 800-810-1117",
		"[Mental Health China](http://www.crisis.org.cn)",
		"**Psychological Support Hotline**: 010-82951332",
		"[Lifeline Shanghai](https://www.lifeline-shanghai.com): 400-821-1215",
	},
	"France": {
		"**SOS Amitié**: 09 72 39 40 50",
		"[La Croix-Rouge Écoute](https://www.croix-rouge.fr): 0 800 858 858",
		"[Fil Santé Jeunes](https://www.filsantejeunes.com): 0 800 235 236",
		"[Association France Dépression](https://www.france-depression.org)",
	},
	"Germany": {
		"**Emergency Psychological Help**: 0800 111 0 111",
		"[German Depression Aid](https://www.deutsche-depressionshilfe.de)",
		"[Telefonseelsorge](https://www.telefonseelsorge.de): 0800 111 0 222",
		"[Psychotherapeutic Federal Chamber](https://www.bptk.de)",
	},
	"Ghana": {
		"[Mental Health Authority Ghana](https://mha-ghana.com): 0800678678",
		"[Mental Health Foundation of Ghana](https://www.mhinnovation.net/organisations/mental-health-foundation-ghana)",
		"[Care and Action for Mental Health in Africa Ghana](https://www.camha.org)",
		"[Find a Therapist](https://turbomedics.com): +234 913 106 0187",
	},
	"India": {
		"**Vandrevala Foundation**: 1860 2662 345",
		"[iCall Psychosocial Helpline](https://icallhelpline.org): 9152987821",
		"[AASRA Crisis Line](https://www.aasra.info): 91-9820466726",
	},
	"Ireland": {
		"**Pieta House**: 1800 247 247",
		"[Aware Depression Support](https://www.aware.ie): 1800 80 48 48",
		"**Samaritans Ireland**: 116 123",
		"[Turn2Me Online Therapy](https://www.turn2me.ie)",
	},
	"Italy": {
		"**Telefono Amico**: 02 2327 2327",
		"[Samaritans Onlus](https://findahelpline.com/organizations/samaritans-onlus): 06 77208977",
		"[La Voce Amica](https://www.lavoceamica.it): 02 873 873",
		"[Emergency Psychological Support]: 800 833 833",
	},
	"Kenya": {
		"[Suicide Prevention](https://befrienders.org/find-support-now/befrienders-kenya/?country=ke): +254 722 178 177",
		"[Mental Health Foundation Helpline](https://mental360.or.ke): +254710360360",
		"[Kamili Organization](https://www.kamilimentalhealth.org): +254 (0)700 327 701",
		"[Find a Therapist](https://turbomedics.com): +234 913 106 0187",
	},
	"Mexico": {
		"**SAPTEL Crisis Line**: 55 5259-8121 (24/7)",
		"[Mental Health Mexico](https://www.saptel.org.mx)",
		"**UNAM Psychological Support**: 55 5025-0855",
	},
	"Netherlands": {
		"**113 Suicide Prevention**: 0900 0113",
		"[MIND Korrelatie](https://www.mindkorrelatie.nl): 0900 1450",
		"[iPractice Online Therapy](https://www.ipractice.nl)",
		"[De Luisterlijn](https://www.deluisterlijn.nl): 0900 0767",
	},
	"New Zealand": {
		"**Lifeline Aotearoa**: 0800 543 354",
		"[Youthline](https://www.youthline.co.nz): 0800 376 633",
		"[Depression Helpline](https://www.depression.org.nz): 0800 111 757",
	},
	"Nigeria": {
		"[Nigerian Mental Health](https://www.nigerianmentalhealth.org): +234 818 659 4160",
		"[Mentally Aware Nigeria Initiative (MANI)](https://mentallyaware.org): 08091116264",
		"[Suicide Research and Prevention Initiative](https://www.surpinng.com): +234-908-021-7555",
		"[Find a Therapist](https://turbomedics.com): +234 913 106 0187",
	},
	"Pakistan": {
		"**Umang Helpline**: 0311-7786264",
		"[Ministry of NHS](https://www.nhsrc.gov.pk): 1166",
		"**Karachi Suicide Prevention**: 021-111-911-911",
	},
	"Singapore": {
		"**Institute of Mental Health**: 6389-2222 (24h emergency)",
		"[SOS Samaritans](https://www.sos.org.sg): 1-767 (24/7)",
		"**Silver Ribbon SG**: 6386-1928",
		"[HealthHub Mental Wellness](https://www.healthhub.sg)",
	},
	"South Africa": {
		"[Suicide Crisis Helpline](https://mha-ghana.com): 0800 567 567",
		"[SA Mental Health Foundation](https://www.scan-network.org.za/ngo-listings/sa-mental-health-foundation/): 0828670390",
		"[INALA MENTAL HEALTH FOUNDATION](https://www.inala.org.za): Email: hello@inala.org.za",
		"[Find a Therapist](https://turbomedics.com): +234 913 106 0187",
	},
	"South Korea": {
		"**Suicide Prevention Hotline**: 1577-0199",
		"[Korea Mental Health Foundation](https://www.mentalhealthkorea.org)",
		"**Lifeline Korea**: 1588-9191",
		"[Seoul Global Center](https://global.seoul.go.kr): 02-2075-4180 (Foreign language support)",
	},
	"Spain": {
		"**Teléfono de la Esperanza**: 717 003 717",
		"[Cruz Roja Escucha](https://www.cruzroja.es): 900 107 917",
		"[ANAR Foundation](https://www.anar.org): 900 20 20 10",
		"[Confidential Suicide Hotline]: 914 590 055",
	},
	"Sweden": {
		"**Mind Sverige**: 901 01 (Chat available)",
		"[Bris Youth Support](https://www.bris.se): 116 111",
		"[Självmordslinjen](https://www.sjalvmordslinjen.se): 901 01",
		"[Kry Mental Health Services](https://www.kry.se)",
	},
	"Switzerland": {
		"**Die Dargebotene Hand**: 143",
		"[Pro Mente Sana](https://www.promentesana.ch): 0848 800 858",
		"[SafeZone Online Counseling](https://www.safezone.ch)",
		"[Children's Advice Line](https://www.147.ch): 147",
	},
	"Thailand": {
		"**Samaritans of Thailand**: 02-713-6793 (EN/TH)",
		"[Department of Mental Health](https://www.dmh.go.th): 1323",
		"**Bangkok Mental Health**: 02-026-5905",
		"[Sati App](https://www.sati.app) (Digital support)",
	},
	"Ukraine": {
		"**Emergency Mental Health Hotline**: 0 800 100 102 (24/7)",
		"[Ukrainian Mental Health Center](https://mentalhealth.org.ua): +38(044)503-87-33",
		"**UNICEF Support Line**: 0 800 500 225",
		"[Psychological First Aid Ukraine](https://www.learning.foundation/ukraine)",
		"**International Red Cross Support**: +380 44 235 1515",
		"[WHO Mental Health Resources](https://www.who.int/ukraine)",
	},
	"United Kingdom": {
		"**Samaritans**: 116 123 (24/7)",
		"[NHS Mental Health Services](https://www.nhs.uk)",
		"[Mind UK](https://www.mind.org.uk): 0300 123 3393",
		"[Shout Crisis Text Line]: Text SHOUT to 85258",
	},
	"United States": {
		"[National Suicide Prevention Lifeline](https://suicidepreventionlifeline.org): 1-800-273-8255",
		"[Crisis Text Line](https://www.crisistextline.org): Text HOME to 741741",
		"[NAMI Helpline](https://www.nami.org): 1-800-950-6264",
		"[Find a Therapist](https://www.psychologytoday.com)",
	},
}

// genericCrisisResources 未收录国家的通用求助渠道
var genericCrisisResources = []string{
	"**International Crisis Support**: Please contact your local emergency services",
	"**WHO Mental Health Resources**: https://www.who.int/health-topics/mental-health",
	"**Crisis Text Line Global**: https://www.crisistextline.org/",
	"**Find Local Support**: Contact your healthcare provider or local mental health services",
}

// CrisisResourcesFor 返回指定国家的危机干预资源，未收录时回退到通用渠道
func CrisisResourcesFor(country string) []string {
	if resources, ok := crisisResources[country]; ok {
		return resources
	}
	return genericCrisisResources
}

// SupportedCountries 返回已收录危机资源的国家列表
func SupportedCountries() []string {
	countries := make([]string, 0, len(crisisResources))
	for country := range crisisResources {
		countries = append(countries, country)
	}
	sort.Strings(countries)
	return countries
}
