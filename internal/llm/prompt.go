package llm

import (
	"github.com/Srimathij/lentra/constants"
)

// SystemPrompt frames the text-only model as a structured-data extractor.
const SystemPrompt = "You are an AI that extracts structured personal details from OCR text extracted from Indian ID cards."

// ClassificationPrompt instructs the model to classify a document image
// into the closed label set. Output is coerced by constants.Canonicalize;
// the prompt itself does no fuzzy matching.
func ClassificationPrompt() string {
	return classificationBody("Extract the text content and analyze it. You will receive an image of a government-issued document.")
}

// ClassificationTextPrompt is the text-only flavor over OCR output.
func ClassificationTextPrompt(ocrText string) string {
	return "OCR Text:\n" + ocrText + "\n\n" +
		classificationBody("You will receive OCR-extracted text from an image of a government-issued document.")
}

func classificationBody(intro string) string {
	return `You are a document classification assistant. ` + intro + `
Your task is to classify the type of card by analyzing the text content.

The possible classifications are:
- Aadhaar Card
- PAN Card
- Udyam Certificate
- Unknown (if it doesn't match any of the above)

Classification Rules:
- Aadhaar: Look for patterns like 12-digit numbers, mentions of "Unique Identification Authority of India", "Aadhaar", "VID", or QR codes.
- PAN Card: Look for "Income Tax Department", "Permanent Account Number", 10-character alphanumeric PAN format (ABCDE1234F).
- Udyam Certificate: Look for "Udyam Registration", "Ministry of MSME", or registration numbers starting with "UDYAM-".
- Unknown: Use this if the text doesn't match any known patterns.

Return only the classification as one of the four options, with no other text:
Aadhaar Card / PAN Card / Udyam Certificate / Unknown`
}

// ExtractionPrompt returns the multimodal (image-attached) instruction
// template for a document type. ok is false for labels without a template.
func ExtractionPrompt(dt constants.DocumentType) (string, bool) {
	body, ok := extractionBody(dt)
	if !ok {
		return "", false
	}
	return "Analyze the document image and extract the following details.\n\n" + body, true
}

// ExtractionTextPrompt returns the text-only instruction template with the
// cleaned OCR text embedded.
func ExtractionTextPrompt(dt constants.DocumentType, ocrText string) (string, bool) {
	body, ok := extractionBody(dt)
	if !ok {
		return "", false
	}
	return "OCR Text:\n" + ocrText + "\n\nAnalyze the text above and extract the following details.\n\n" + body, true
}

func extractionBody(dt constants.DocumentType) (string, bool) {
	switch dt {
	case constants.AadhaarCard:
		return aadhaarTemplate, true
	case constants.PANCard:
		return panTemplate, true
	case constants.UdyamCertificate:
		return udyamTemplate, true
	default:
		return "", false
	}
}

// BirthCertificatePrompt is the birth-certificate template. It is not in
// the classifier's dispatch set yet; callers can use it directly.
func BirthCertificatePrompt() string {
	return "Analyze the document image and extract the following details.\n\n" + birthCertificateTemplate
}

const aadhaarTemplate = `- Name (typically the card holder's name).
- A date formatted as a date of birth (DOB).
- A valid 12-digit number (may contain spaces or appear on multiple lines).
- Relation Name (extract the correct name mentioned with W/O, S/O, D/O, or C/O).
- A text block that resembles an address, including the 6-digit PIN code.

### Strict Rules for the 12-digit Aadhaar Number:
- The number must be exactly 12 digits long (e.g., "1234 5678 9012" or "123456789012").
- If the number appears across multiple lines, reconstruct it before checking the length.
- Ignore numbers shorter than 12 digits (like pincodes).
- Ignore numbers longer than 12 digits (like 16-digit VID numbers).
- Remove spaces before validating the 12-digit length.
- If no valid 12-digit number is found, return "Not Found".

### Strict Rules for Date of Birth (DOB) Extraction:
- The DOB must be in either of these formats:
  - YYYY (e.g., 1984, 1947)
  - DD/MM/YYYY (e.g., 01/02/1982, 01/01/1984)
- If the date appears in an invalid format (e.g., /B08/02/1982 or /DB09/01/1984), correct it to DD/MM/YYYY.
- Remove any unnecessary prefixes or symbols before the date.
- If only a year is provided, extract it as the DOB (e.g., 1947).
- If no valid date is found, return "Not Found".

### Rules for Relation Name Extraction (W/O, S/O, D/O, C/O):
- Identify and extract the name associated with W/O (Wife of), S/O (Son of), D/O (Daughter of), or C/O (Care of).
- Extract only the person's name following the relation tag, not the tag itself.
- Example: if the text contains "S/O: Murat Singh", extract only "Murat Singh".
- Only one relation will be mentioned in the text.
- If no W/O, S/O, D/O, or C/O is found at all, return "Not Found".

### Rules for Address Extraction:
- Extract only the address portion without including gender information.
- Ignore words like "Male", "Female", "M/F", or similar gender-related terms.
- The address typically contains house numbers, streets, cities, states, and PIN codes (which are 6-digit numbers).
- Always include any 6-digit numbers (PIN codes) that appear near the address block.
- Even if the PIN code appears on a new line or at the end, attach it to the address.

### Output Format:
Return only this strict JSON object (no other text):

{
  "Name": "Extracted Name or 'Not Found'",
  "DOB": "Extracted DOB or 'Not Found'",
  "Number": "Valid 12-digit number or 'Not Found'",
  "Relation_Name": "Extracted Relation Name or 'Not Found'",
  "Address": "Complete Address in a single paragraph or 'Not Found'"
}`

const panTemplate = `**Knowledge**
- PAN Numbers are 10-character alphanumeric identifiers (not 12-digit numbers like Aadhaar).
- PAN Numbers follow a specific format: 5 alphabets, followed by 4 numbers, followed by 1 alphabet.
- The first 5 characters are letters (A-Z), the next 4 are numbers (0-9), and the last is a letter (A-Z).
- Example format: ABCDE1234F
- Indian addresses typically end with a 6-digit PIN code.
- Relation indicators: W/O (Wife of), S/O (Son of), D/O (Daughter of), C/O (Care of).
- Dates in Indian documents may appear in various formats that need standardization.

### Strict Rules for PAN Number Extraction:
- The PAN must be exactly 10 characters long in the format of 5 letters + 4 digits + 1 letter.
- Validate that the first 5 characters are letters, the next 4 are digits, and the last is a letter.
- Remove spaces before validating the format.
- If the PAN appears across multiple lines, reconstruct it before checking.
- If no valid PAN number is found, return "Not Found".

### Strict Rules for Date of Birth (DOB) Extraction:
- The DOB must be in either of these formats:
  - YYYY (e.g., 1984, 1947)
  - DD/MM/YYYY (e.g., 01/02/1982, 01/01/1984)
- If the date appears in an invalid format (e.g., /B08/02/1982 or /DB09/01/1984), correct it to DD/MM/YYYY.
- Remove any unnecessary prefixes or symbols before the date.
- If only a year is provided, extract it as the DOB (e.g., 1947).
- If no valid date is found, return "Not Found".

Your life depends on accurately identifying the correct format of the PAN number (5 letters + 4 digits + 1 letter) and not confusing it with other numerical identifiers in the document.

### Output Format:
Return only this strict JSON object (no other text):

{
  "Name": "Extracted Name or 'Not Found'",
  "DOB": "Extracted DOB or 'Not Found'",
  "PAN_Number": "Valid 10-character PAN or 'Not Found'"
}`

const udyamTemplate = `Extract the following details relevant to a Udyam Registration Certificate:

- Enterprise Name (typically the registered business name).
- Udyam Registration Number (exactly 16 characters, alphanumeric, usually starts with 'UDYAM-' and includes hyphens).
- Type of Enterprise (e.g., Micro, Small, Medium).
- Owner Name (extract the individual's name associated with the enterprise).
- Official Address block including State, District, and a 6-digit PIN code.

### Strict Rules for Udyam Registration Number:
- Must be exactly 16 characters long (including hyphens).
- Usually in the format: UDYAM-XX-00-0000000 (alphanumeric).
- Ignore any sequences that are not exactly 16 characters or that don't start with UDYAM-.
- If the number is split across multiple lines, reconstruct it.
- If no valid number is found, return "Not Found".

### Rules for Type of Enterprise Extraction:
- Extract terms such as Micro, Small, or Medium based on their mention in the document.
- Ignore any unrelated business terms or categories.

### Rules for Address Extraction:
- Extract the complete address block containing street/locality, district, state, and 6-digit PIN code.
- If parts of the address appear across multiple lines, reconstruct into a single paragraph.
- Always include a 6-digit PIN code.
- Ignore extra unrelated info like email, phone number, or industry classification.

### Rules for Owner Name Extraction:
- Find and extract the name associated with labels like "Name of Entrepreneur", "Proprietor", or similar.
- Only extract the actual name; remove any prefixes like "Mr.", "Ms.", or label words.

### Output Format:
Return only this strict JSON object (no other text):

{
  "Enterprise_Name": "Extracted Enterprise Name or 'Not Found'",
  "Udyam_Registration_Number": "Extracted Number or 'Not Found'",
  "Type_of_Enterprise": "Micro/Small/Medium or 'Not Found'",
  "Owner_Name": "Extracted Name or 'Not Found'",
  "Address": "Complete Address in a single paragraph or 'Not Found'"
}`

const birthCertificateTemplate = `Extract the following details relevant to an Indian Birth Certificate:

- Full Name of the Child
- Date of Birth (DOB) in a valid format
- Gender
- Father's Name
- Mother's Name
- Place of Birth (typically includes hospital/house name, locality, district, and state)
- Registration Number (alphanumeric code associated with the certificate)

### Rules for Date of Birth (DOB) Extraction:
- Acceptable formats: DD/MM/YYYY (e.g., 01/01/2001), DD-MM-YYYY, or DD Month YYYY (e.g., 01 January 2001).
- If the date appears with extra symbols or typos (like "/D0B: 12/03/1994"), correct and extract it.
- If no valid date is found, return "Not Found".

### Rules for Gender Extraction:
- Extract gender as Male, Female, or Other.
- Ignore variants or extra words like "Sex:", "Gender:", etc.
- If not found, return "Not Found".

### Rules for Parent Names Extraction:
- Father's Name labels: "Father", "Father's Name", "S/O", etc.
- Mother's Name labels: "Mother", "Mother's Name", "M/O", etc.
- Only extract the full names, without labels or prefixes like "Mr." or "Mrs.".
- If a name is missing, return "Not Found" for that field.

### Rules for Place of Birth Extraction:
- Extract a complete location including hospital/home name, area/locality, district, and state.
- If the place is split across lines, reconstruct it into a single paragraph.
- Must not include unrelated data like phone numbers or certificate authority info.

### Output Format:
Return only this strict JSON object (no other text):

{
  "Child_Name": "Extracted Name or 'Not Found'",
  "DOB": "Extracted DOB or 'Not Found'",
  "Gender": "Male/Female/Other or 'Not Found'",
  "Father_Name": "Extracted Name or 'Not Found'",
  "Mother_Name": "Extracted Name or 'Not Found'",
  "Place_of_Birth": "Complete Place in a single paragraph or 'Not Found'",
  "Registration_Number": "Extracted Number or 'Not Found'"
}`
