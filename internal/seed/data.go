package seed

import "uprala/pkg/types"

var supportTypes = []lookupSeed{
	{Key: "FINANCIAL", Label: "Financial Assistance (funding, relief)"},
	{Key: "RECON", Label: "Reconstruction & Infrastructure"},
	{Key: "MEDICAL", Label: "Medical & Health Services"},
	{Key: "EDU", Label: "Education & Child Support"},
	{Key: "LIVELIHOOD", Label: "Livelihood Restoration"},
	{Key: "RELIEF", Label: "Relief & Rehabilitation"},
	{Key: "PSYCHO", Label: "Psychological Counseling & Support"},
	{Key: "OTHER", Label: "Other"},
}

var scales = []lookupSeed{
	{Key: "FULL", Label: "Adoption of a full village"},
	{Key: "PARTIAL", Label: "Partial support for a village (specific need)"},
	{Key: "FUND", Label: "Contribution to a common fund for rehabilitation"},
	{Key: "OPEN", Label: "Undecided / open to discussion"},
}

var ngos = []ngoSeed{
	{Name: "Amritsar Relief Foundation", Type: "NGO"},
	{Name: "Punjab CSR Trust", Type: "CSR"},
}

// villageNames lists the flood-affected villages loaded on first run. Repeats
// are collapsed by the name upsert.
var villageNames = []string{
	"Chak dogra", "Fatewaal", "Dalla malia", "Tera rajpoota", "Ajnala", "Ibrahimpura",
	"Riar", "Sarai", "Chak Phula", "Chamiari", "Nangal Wanjhan wala", "Wanjhanwala",
	"Kamirpura", "Gujjarpura", "Kotli amb", "Harar kalan", "Bikraur", "Saidpur khurd",
	"Hasham pura", "Barlas", "Balharwal", "Bohgan", "Gurala", "Kotli kazia", "Lakhuwal",
	"Aliwal", "Sheikh bhatti", "Majhi miu", "Sahliwal", "Saido gazi", "Bal labhe darya",
	"Kamirpura (50)", "Sultan mahal", "Kalo mahal", "Samrai", "Bhandaal", "Malakpur",
	"Langarpura", "Daria musa", "Dujowaal", "Bajwa", "Dahurian", "Urdhan", "Bhure gill",
	"Harar near Bhure gill", "Ghonewala", "Saharan", "Gagomahal", "Dial bhatti", "Sammowal",
	"Anaitpura", "Harrar khurd", "Sudhar", "Nanoke", "Kuralian", "Abusaid", "Langomahal",
	"Dialpura", "Nasar", "Sarangdev", "Khanwal", "Granthgarh", "Talwandi rai dadu",
	"Dalla Rajpootan", "Bhaini gill", "Gill", "Dhian singh pura", "Raipur kalan", "Channa",
	"Bhainian", "Sundar garh", "Jafarkot", "Kotli koka", "Punga", "Chak aul",
	"Jagdev khurd", "Chak bala", "Sahowal", "Thoba", "Momanpura", "Kotli jamiat singh",
	"Kasowala", "Arazi Kasowala", "Arazi Saharan", "Makowal", "Jassar", "Awan near ramdas",
	"Pandori", "Kotli shah habib", "Nangal amb", "Galab", "Chaharpur", "Arazi darya",
	"Darya mansoor", "Wadai cheema", "Kotli barwala", "Daddian", "Sehzada baad",
	"Budha Warsal", "Pairewaal", "Lakhuwal", "Dhangai", "Suffian", "Kot rajada",
	"Arazikot rajada", "Panj garai wahla", "Ghumrai", "Singhoke", "Arazi Singhoke",
	"Phool pura", "Gaggar", "Kamalpura kalan", "Dadraa", "Kamalpura khurd", "Jatta",
	"Shehzada", "Mangu naru", "Talab pura", "Nangal sohal", "Katle", "Rurewal", "Motla",
	"Jai Ram kot", "Kotla Suraaj Lohar", "Kotli Khehra", "Jasraur", "Ghoga", "Tanana",
	"Awaan Vasau", "Gulgarh", "Dial Rangarh", "Jhunj", "Nepal", "Chahiya",
	"Cheena Karam Singh", "Chakk Fateh Khan", "Miadi Kalan", "Panju Kalal", "Bhalot",
	"Dhandal", "Kotli Korotana", "Bhindi Saidan", "Bhindi Aulakh kalan",
	"Bhindi Aulakh Khurd", "Bhindi Nain", "Wariyan", "Toor", "Kutiwal", "Shahpur",
	"Miadi khurd", "Kot Sidhu", "Rakh Othian", "Othian", "Kariyal", "Jastarwal", "Umarpura",
	"Kakkar", "Manj", "Raniyan", "Lodhi Gujjar", "Saidpur kalan", "Dugg", "Tutt", "Vehra",
	"Burj", "Mohleke", "Mandianwala", "Chuchakwal", "Bhagupur Uttadh", "Mujjafarpur",
	"Channa", "Kotli Dausandhi", "Bhagupur Bet", "Bhilowal Kakejei", "Saurian", "Talla",
	"Tareen", "Hasanpura", "Kaakar", "Awaan Lakha Singh", "Khusupura", "Fatah Bhelol",
	"Sherpur", "Akbarpur", "Wazir Bhullar", "Shero Baggah", "Shero Nigah", "Budda theh",
	"Kot Mehtab", "Mehmad Mandranwala", "Ramdas", "Kot Gurbax", "Machhiwala", "Pashia",
	"Nisoke",
}

// patwariContacts maps a village name, including common alternate spellings,
// to its patwari. Lookups are case-insensitive.
var patwariContacts = map[string]contactSeed{
	"Ghonewala": {Name: "Gaurav Manan", Phone: "83602-35211", Role: types.ContactRolePatwari},
	"Ghonewal": {Name: "Gaurav Manan", Phone: "83602-35211", Role: types.ContactRolePatwari},
	"Mehmad Mandranwala": {Name: "Paramjit Singh", Phone: "79688-28119", Role: types.ContactRolePatwari},
	"Kotli shah habib": {Name: "Paramjit Singh", Phone: "79688-28119", Role: types.ContactRolePatwari},
	"Jatta": {Name: "Pardeep Kumar", Phone: "94642-26971", Role: types.ContactRolePatwari},
	"Shehzada": {Name: "Pardeep Kumar", Phone: "94642-26971", Role: types.ContactRolePatwari},
	"Machhiwala": {Name: "Pardeep Kumar", Phone: "94642-26971", Role: types.ContactRolePatwari},
	"Mangu naru": {Name: "Pardeep Kumar", Phone: "94642-26971", Role: types.ContactRolePatwari},
	"Kot Gurbax": {Name: "Pardeep Kumar", Phone: "94642-26971", Role: types.ContactRolePatwari},
	"Pashia": {Name: "Pardeep Kumar", Phone: "94642-26971", Role: types.ContactRolePatwari},
	"Saharan": {Name: "Gaurav Manan", Phone: "83602-35211", Role: types.ContactRolePatwari},
	"Kasowala": {Name: "Gaurav Manan", Phone: "83602-35211", Role: types.ContactRolePatwari},
	"Arazi Kasowala": {Name: "Gaurav Manan", Phone: "83602-35211", Role: types.ContactRolePatwari},
	"Arazi Saharan": {Name: "Gaurav Manan", Phone: "83602-35211", Role: types.ContactRolePatwari},
	"Arazi Daria": {Name: "Harwinder Singh", Phone: "99141-71111", Role: types.ContactRolePatwari},
	"Phool pura": {Name: "Sarbjit Singh", Phone: "70879-58474", Role: types.ContactRolePatwari},
	"Gaggar": {Name: "Sarbjit Singh", Phone: "70879-58474", Role: types.ContactRolePatwari},
	"Kamalpura kalan": {Name: "Pardeep Kumar", Phone: "94642-26971", Role: types.ContactRolePatwari},
	"Dadraa": {Name: "Pardeep Kumar", Phone: "94642-26971", Role: types.ContactRolePatwari},
	"Kamalpura khurd": {Name: "Pardeep Kumar", Phone: "94642-26971", Role: types.ContactRolePatwari},
	"Talab pura": {Name: "Pardeep Kumar", Phone: "94642-26971", Role: types.ContactRolePatwari},
	"Raipur kalan": {Name: "Shaminder Singh", Phone: "98148-49557", Role: types.ContactRolePatwari},
	"Samrai": {Name: "Loveleen Singh", Phone: "99760-11117", Role: types.ContactRolePatwari},
	"Dhangai": {Name: "Harwinder Singh", Phone: "99141-71111", Role: types.ContactRolePatwari},
	"Panj garai wahla": {Name: "Sarbjit Singh", Phone: "70879-58474", Role: types.ContactRolePatwari},
	"Ghumrai": {Name: "Sarbjit Singh", Phone: "70879-58474", Role: types.ContactRolePatwari},
	"Singhoke": {Name: "Sarbjit Singh", Phone: "70879-58474", Role: types.ContactRolePatwari},
	"Nangal sohal": {Name: "Sarbjit Singh", Phone: "70879-58474", Role: types.ContactRolePatwari},
	"Katle": {Name: "Sarbjit Singh", Phone: "70879-58474", Role: types.ContactRolePatwari},
	"Rurewal": {Name: "Sarbjit Singh", Phone: "70879-58474", Role: types.ContactRolePatwari},
	"Bhagupur Uttadh": {Name: "Paramjit Singh", Phone: "79688-28119", Role: types.ContactRolePatwari},
	"Gill": {Name: "Anuj Sharma", Phone: "70877-77857", Role: types.ContactRolePatwari},
	"Gillan": {Name: "Anuj Sharma", Phone: "70877-77857", Role: types.ContactRolePatwari},
	"Bhandal": {Name: "Loveleen Singh", Phone: "99760-11117", Role: types.ContactRolePatwari},
	"Malakpur": {Name: "Loveleen Singh", Phone: "99760-11117", Role: types.ContactRolePatwari},
	"Langarpura": {Name: "Loveleen Singh", Phone: "99760-11117", Role: types.ContactRolePatwari},
	"Dujowaal": {Name: "Iqbal Singh", Phone: "98783-29007", Role: types.ContactRolePatwari},
	"Bajwa": {Name: "Iqbal Singh", Phone: "98783-29007", Role: types.ContactRolePatwari},
	"Thoba": {Name: "Gaurav Manan", Phone: "83602-35211", Role: types.ContactRolePatwari},
	"Awan near ramdas": {Name: "Paramjit Singh", Phone: "79688-28119", Role: types.ContactRolePatwari},
	"Pandori": {Name: "Paramjit Singh", Phone: "79688-28119", Role: types.ContactRolePatwari},
	"Khanwal": {Name: "Anuj Sharma", Phone: "70877-77857", Role: types.ContactRolePatwari},
	"Granthgarh": {Name: "Anuj Sharma", Phone: "70877-77857", Role: types.ContactRolePatwari},
	"Talwandi rai dadu": {Name: "Anuj Sharma", Phone: "70877-77857", Role: types.ContactRolePatwari},
	"Dalla Rajpootan": {Name: "Anuj Sharma", Phone: "70877-77857", Role: types.ContactRolePatwari},
	"Jagdev khurd": {Name: "Anuj Sharma", Phone: "70877-77857", Role: types.ContactRolePatwari},
	"Chak bala": {Name: "Anuj Sharma", Phone: "70877-77857", Role: types.ContactRolePatwari},
	"Sahowal": {Name: "Anuj Sharma", Phone: "70877-77857", Role: types.ContactRolePatwari},
	"Balharwal": {Name: "Anuj Sharma", Phone: "70877-77557", Role: types.ContactRolePatwari},
	"Galab": {Name: "Daljit Singh", Phone: "98818-70008", Role: types.ContactRolePatwari},
	"Chaharpur": {Name: "Daljit Singh", Phone: "98818-70008", Role: types.ContactRolePatwari},
	"Kamirpura near Ajnala": {Name: "Jhanda Singh", Phone: "70091-18038", Role: types.ContactRolePatwari},
	"Nangal Amb": {Name: "Daljit Singh", Phone: "98818-70008", Role: types.ContactRolePatwari},
	"Chak Dogra": {Name: "Jaswinder Singh", Phone: "98151-44435", Role: types.ContactRolePatwari},
	"Chak dogra": {Name: "Jaswinder Singh", Phone: "98151-44435", Role: types.ContactRolePatwari},
	"Tera Rajpootan": {Name: "Jaswinder Singh", Phone: "98151-44435", Role: types.ContactRolePatwari},
	"Fatewaal": {Name: "Jaswinder Singh", Phone: "98151-44435", Role: types.ContactRolePatwari},
	"Dalla malia": {Name: "Jaswinder Singh", Phone: "98151-44435", Role: types.ContactRolePatwari},
	"Ibrahimpura": {Name: "Jaspal Singh", Phone: "88100-00028", Role: types.ContactRolePatwari},
	"Gujjarpura": {Name: "Jhanda Singh", Phone: "70091-18038", Role: types.ContactRolePatwari},
	"Punga": {Name: "Shaminder Singh", Phone: "98148-49557", Role: types.ContactRolePatwari},
	"Gurala": {Name: "Bhupinder Kumar", Phone: "98159-16986", Role: types.ContactRolePatwari},
	"Aliwal": {Name: "Bhupinder Kumar", Phone: "98159-16986", Role: types.ContactRolePatwari},
	"Nangal Wanjhan wala": {Name: "Jhanda Singh", Phone: "70091-18038", Role: types.ContactRolePatwari},
	"Wanjhanwala": {Name: "Jhanda Singh", Phone: "70091-18038", Role: types.ContactRolePatwari},
	"Gaggomahal": {Name: "Vishal Mahajan", Phone: "84271-77282", Role: types.ContactRolePatwari},
	"Samowal": {Name: "Surjit Singh", Phone: "94631-13453", Role: types.ContactRolePatwari},
	"Anaitpura": {Name: "Surjit Singh", Phone: "94631-13453", Role: types.ContactRolePatwari},
	"Chak aul": {Name: "Shaminder Singh", Phone: "98148-49557", Role: types.ContactRolePatwari},
	"Bikraur": {Name: "Shaminder Singh", Phone: "98148-49557", Role: types.ContactRolePatwari},
	"Saidpur khurd": {Name: "Shaminder Singh", Phone: "98148-49557", Role: types.ContactRolePatwari},
	"Barlas": {Name: "Shaminder Singh", Phone: "98148-49557", Role: types.ContactRolePatwari},
	"Kotli kazia": {Name: "Bhupinder Kumar", Phone: "98159-16986", Role: types.ContactRolePatwari},
	"Sudhar": {Name: "Sandeep Singh", Phone: "98550-93004", Role: types.ContactRolePatwari},
	"Nanoke": {Name: "Sandeep Singh", Phone: "98550-93004", Role: types.ContactRolePatwari},
	"Kuralian": {Name: "Sandeep Singh", Phone: "98550-93004", Role: types.ContactRolePatwari},
	"Abusaid": {Name: "Sandeep Singh", Phone: "98550-93004", Role: types.ContactRolePatwari},
	"Langomahal": {Name: "Sandeep Singh", Phone: "98550-93004", Role: types.ContactRolePatwari},
	"Sultan mahal": {Name: "Loveleen Singh", Phone: "99760-11117", Role: types.ContactRolePatwari},
	"Kalo mahal": {Name: "Loveleen Singh", Phone: "99760-11117", Role: types.ContactRolePatwari},
	"Kotli jamiat singh": {Name: "Gaurav Manan", Phone: "83602-35211", Role: types.ContactRolePatwari},
	"Pairewaal": {Name: "Harwinder Singh", Phone: "99141-71111", Role: types.ContactRolePatwari},
	"Lakhuwal": {Name: "Harwinder Singh", Phone: "99141-71111", Role: types.ContactRolePatwari},
	"Chak Phula": {Name: "Jaspal Singh", Phone: "88100-00028", Role: types.ContactRolePatwari},
	"Kotli amb": {Name: "Jhanda Singh", Phone: "70091-18038", Role: types.ContactRolePatwari},
	"Harar khurd": {Name: "Surjit Singh", Phone: "94631-13453", Role: types.ContactRolePatwari},
	"Urdhan": {Name: "Joban jit Singh", Phone: "98724-19190", Role: types.ContactRolePatwari},
	"Bhure gill": {Name: "Joban jit Singh", Phone: "98724-19190", Role: types.ContactRolePatwari},
	"Makowal": {Name: "Gaurav Manan", Phone: "83602-35211", Role: types.ContactRolePatwari},
	"Jassar": {Name: "Gaurav Manan", Phone: "83602-35211", Role: types.ContactRolePatwari},
	"Ajnala": {Name: "Jaspal Singh", Phone: "88100-00028", Role: types.ContactRolePatwari},
	"Riar": {Name: "Jaspal Singh", Phone: "88100-00028", Role: types.ContactRolePatwari},
	"Sarai": {Name: "Jaspal Singh", Phone: "88100-00028", Role: types.ContactRolePatwari},
	"Chamiari": {Name: "Surjit Singh", Phone: "94631-13454", Role: types.ContactRolePatwari},
	"Harar Kalan": {Name: "Jhanda Singh", Phone: "70091-18038", Role: types.ContactRolePatwari},
	"Dial Bhatti": {Name: "Surjit Singh", Phone: "94631-13453", Role: types.ContactRolePatwari},
	"Dialpura": {Name: "Sandeep Singh", Phone: "98550-93004", Role: types.ContactRolePatwari},
	"Nasar": {Name: "Sandeep Singh", Phone: "98550-93004", Role: types.ContactRolePatwari},
	"Sarangdev": {Name: "Anuj Sharma", Phone: "70877-77857", Role: types.ContactRolePatwari},
	"Bhaini gill": {Name: "Anuj Sharma", Phone: "70877-77857", Role: types.ContactRolePatwari},
	"Dhian singh pura": {Name: "Anuj Sharma", Phone: "70877-77857", Role: types.ContactRolePatwari},
	"Channa": {Name: "Shaminder Singh", Phone: "98148-49557", Role: types.ContactRolePatwari},
	"Bhainian": {Name: "Shaminder Singh", Phone: "98148-49557", Role: types.ContactRolePatwari},
	"Sundar garh": {Name: "Shaminder Singh", Phone: "98148-49557", Role: types.ContactRolePatwari},
	"Jafarkot": {Name: "Shaminder Singh", Phone: "98148-49557", Role: types.ContactRolePatwari},
	"Kotli koka": {Name: "Shaminder Singh", Phone: "98148-49557", Role: types.ContactRolePatwari},
	"Hasham pura": {Name: "Shaminder Singh", Phone: "98148-49557", Role: types.ContactRolePatwari},
	"Bohgan": {Name: "Anuj Sharma", Phone: "70877-77557", Role: types.ContactRolePatwari},
	"Lakhuwal Near Ajnala": {Name: "Bhupinder Kumar", Phone: "98159-16986", Role: types.ContactRolePatwari},
	"Shaikh bhatti": {Name: "Balwinder Singh", Phone: "98158-11765", Role: types.ContactRolePatwari},
	"Majhi miu": {Name: "Balwinder Singh", Phone: "98158-11765", Role: types.ContactRolePatwari},
	"Shaliwal": {Name: "Balwinder Singh", Phone: "98158-11765", Role: types.ContactRolePatwari},
	"Saidogaji": {Name: "Balwinder Singh", Phone: "98158-11765", Role: types.ContactRolePatwari},
	"Bal labhe darya": {Name: "Balwinder Singh", Phone: "98158-11765", Role: types.ContactRolePatwari},
	"Kamirpura near Ramdas": {Name: "Balwinder Singh", Phone: "98158-11765", Role: types.ContactRolePatwari},
	"Dariya Mussa": {Name: "Loveleen Singh", Phone: "99760-11117", Role: types.ContactRolePatwari},
	"Dujowal": {Name: "Iqbal Singh", Phone: "98783-29007", Role: types.ContactRolePatwari},
	"Harrar Nere Bhuregil": {Name: "Joban jit Singh", Phone: "98724-19190", Role: types.ContactRolePatwari},
	"Momanpura": {Name: "Gaurav Manan", Phone: "83602-35211", Role: types.ContactRolePatwari},
	"Daria Mansoor": {Name: "Harwinder Singh", Phone: "99141-71111", Role: types.ContactRolePatwari},
	"Wadai cheema": {Name: "Harwinder Singh", Phone: "99141-71111", Role: types.ContactRolePatwari},
	"Kotli barwala": {Name: "Sarbjit Singh", Phone: "70879-58474", Role: types.ContactRolePatwari},
	"Daddian": {Name: "Sarbjit Singh", Phone: "70879-58474", Role: types.ContactRolePatwari},
	"Sehzada baad": {Name: "Sarbjit Singh", Phone: "70879-58474", Role: types.ContactRolePatwari},
	"Budha Warsal": {Name: "Sarbjit Singh", Phone: "70879-58474", Role: types.ContactRolePatwari},
	"Suffian": {Name: "Sarbjit Singh", Phone: "70879-58474", Role: types.ContactRolePatwari},
	"Kot rajada": {Name: "Sarbjit Singh", Phone: "70879-58474", Role: types.ContactRolePatwari},
	"Arazi Singhoke": {Name: "Sarbjit Singh", Phone: "70879-58474", Role: types.ContactRolePatwari},
	"Ramdas": {Name: "Sarbjit Singh", Phone: "70879-58474", Role: types.ContactRolePatwari},
	"Nisoke": {Name: "Pardeep Kumar", Phone: "94642-26971", Role: types.ContactRolePatwari},
	"Abadi Chandigarh": {Name: "Paramjit Singh", Phone: "79688-28119", Role: types.ContactRolePatwari},
}

// priorityVillages are flagged both needsHelp and mostEffected.
var priorityVillages = []string{
	"Bal labhe darya",
	"Daria musa",
	"Ghonewala",
	"Kuralia",
	"Channa",
	"Jafarkot",
	"Mehmad Mandranwala",
	"Galab",
	"Dhangai",
	"Kot rajada",
	"Panj garai wahla",
	"Ghumrai",
	"Singhoke",
	"Gaggar",
	"Nisoke",
	"Jatta",
	"Mashi wala",
	"Kot Gurbax",
	"Pashia",
	"Nangal sohal",
}
